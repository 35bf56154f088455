package user

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/EasyPost_Go/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of repository.User
// for integration-style unit tests. Safe for concurrent use.
type FakeRepository struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64

	// CreateErr, when set, is returned by CreateUser.
	CreateErr error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (f *FakeRepository) CreateUser(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateErr != nil {
		return f.CreateErr
	}
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}

	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *FakeRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user, ok := f.users[userID]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *FakeRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return f.findUser(func(u *domain.User) bool { return u.Username == username })
}

func (f *FakeRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.findUser(func(u *domain.User) bool { return u.Email == email })
}

func (f *FakeRepository) GetUserByWhatsAppNumber(ctx context.Context, number string) (*domain.User, error) {
	return f.findUser(func(u *domain.User) bool { return u.WhatsAppNumber == number })
}

func (f *FakeRepository) UpdateUser(ctx context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = &user
	return nil
}

func (f *FakeRepository) DeleteUser(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *FakeRepository) findUser(match func(*domain.User) bool) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
