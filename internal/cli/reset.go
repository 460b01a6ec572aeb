package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"versekeeper/internal/config"
	"versekeeper/internal/database"
)

// ResetCommand wipes all users and verses from a database file.
type ResetCommand struct {
	DatabasePath string
	Force        bool
}

// NewResetCommand creates a new ResetCommand.
func NewResetCommand() *ResetCommand {
	return &ResetCommand{}
}

// ParseFlags parses command line flags.
func (cmd *ResetCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("reset-db", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.Force, "force", false, "Skip the confirmation prompt")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s reset-db [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete every user and verse from the database. Destructive and irreversible.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the reset.
func (cmd *ResetCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database file %s does not exist", cmd.DatabasePath)
	}

	db, err := database.New(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	users, err := db.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	verses, err := db.ListAllVerses()
	if err != nil {
		return fmt.Errorf("failed to count verses: %w", err)
	}

	fmt.Printf("Database %s holds %d users and %d verses.\n", cmd.DatabasePath, len(users), len(verses))

	if !cmd.Force {
		fmt.Print("Type 'yes' to delete everything: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := db.ResetAll(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	fmt.Println("Database reset.")
	return nil
}
