package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/shelfshare/shelfshare/internal/config"
	"github.com/shelfshare/shelfshare/internal/database"
	"github.com/shelfshare/shelfshare/internal/database/books"
	"github.com/shelfshare/shelfshare/internal/database/users"
	"github.com/shelfshare/shelfshare/internal/entities"
)

// SeedCommand creates demo users with API tokens and a few sample listings.
// It stands in for the external registration flow during local development.
type SeedCommand struct {
	fs     *flag.FlagSet
	dbPath string
}

func NewSeedCommand() *SeedCommand {
	cmd := &SeedCommand{
		fs: flag.NewFlagSet("seed", flag.ContinueOnError),
	}
	cmd.fs.StringVar(&cmd.dbPath, "db", config.DefaultDatabasePath, "Path to the database file")
	return cmd
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	return cmd.fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	db, err := database.NewDatabase(cmd.dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	seedUsers := []struct {
		username    string
		displayName string
	}{
		{"alice", "Alice"},
		{"bob", "Bob"},
		{"carol", "Carol"},
	}

	created := make(map[string]*entities.User, len(seedUsers))
	for _, su := range seedUsers {
		if existing, err := userRepo.GetByUsername(ctx, su.username); err == nil {
			fmt.Printf("User %s already exists (id=%d)\n", su.username, existing.ID)
			created[su.username] = existing
			continue
		}
		user, err := userRepo.Create(ctx, su.username, su.displayName)
		if err != nil {
			return fmt.Errorf("create user %s: %w", su.username, err)
		}
		created[su.username] = user
		fmt.Printf("Created user %s (id=%d) token=%s\n", user.Username, user.ID, user.Token)
	}

	seedBooks := []struct {
		owner  string
		title  string
		author string
	}{
		{"alice", "The Go Programming Language", "Donovan & Kernighan"},
		{"alice", "Designing Data-Intensive Applications", "Martin Kleppmann"},
		{"bob", "The Pragmatic Programmer", "Hunt & Thomas"},
	}

	for _, sb := range seedBooks {
		owner := created[sb.owner]
		copy := &entities.BookCopy{
			OwnerID: owner.ID,
			Title:   sb.title,
			Author:  sb.author,
		}
		if err := bookRepo.Create(ctx, copy); err != nil {
			return fmt.Errorf("create book %q: %w", sb.title, err)
		}
		fmt.Printf("Listed %q (id=%d) for %s\n", copy.Title, copy.ID, owner.Username)
	}

	return nil
}
