package cli

import (
	"flag"
	"fmt"
	"os"

	"versekeeper/internal/config"
	"versekeeper/internal/database"
)

// IntegrityCommand checks a database file for verses whose owner is gone.
type IntegrityCommand struct {
	DatabasePath string
	Verbose      bool
}

// NewIntegrityCommand creates a new IntegrityCommand.
func NewIntegrityCommand() *IntegrityCommand {
	return &IntegrityCommand{}
}

// ParseFlags parses command line flags.
func (cmd *IntegrityCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("integrity-scan", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every orphaned verse")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s integrity-scan [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Scan the database for verses whose owner no longer exists.\n")
		fmt.Fprintf(os.Stderr, "Exits non-zero when orphans are found. Nothing is deleted.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the scan.
func (cmd *IntegrityCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database file %s does not exist", cmd.DatabasePath)
	}

	db, err := database.New(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	orphans, err := db.Verses.ListOrphans()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(orphans) == 0 {
		fmt.Println("No orphaned verses found.")
		return nil
	}

	if cmd.Verbose {
		for _, verse := range orphans {
			fmt.Printf("  %s  %-20s owner %s\n", verse.ID, verse.Reference, verse.UserID)
		}
	}

	return fmt.Errorf("found %d orphaned verses", len(orphans))
}
