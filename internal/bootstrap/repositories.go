package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/EasyPost_Go/internal/database/postgres"
	"github.com/osse101/EasyPost_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	User          repository.User
	SocialAccount repository.SocialAccount
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:          postgres.NewUserRepository(dbPool),
		SocialAccount: postgres.NewSocialAccountRepository(dbPool),
	}
}
