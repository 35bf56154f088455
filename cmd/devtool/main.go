package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := NewRegistry()
	registry.Register(&BenchCommand{})
	registry.Register(&BuildCommand{})
	registry.Register(&CheckCoverageCommand{})
	registry.Register(&CheckDBCommand{})
	registry.Register(&CheckDepsCommand{})
	registry.Register(&DoctorCommand{})
	registry.Register(&HealthCheckCommand{})
	registry.Register(&MigrateCommand{})
	registry.Register(&PreCommitCommand{})
	registry.Register(&SeedCommand{})
	registry.Register(&SetupCommand{})
	registry.Register(&TestMigrationsCommand{})
	registry.Register(&TestSecurityCommand{})
	registry.Register(&WaitForDBCommand{})

	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.PrintHelp()
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}
