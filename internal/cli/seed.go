package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
)

// SeedCommand loads the sample catalog into an empty database.
type SeedCommand struct {
	DatabasePath string

	Out io.Writer
}

// NewSeedCommand creates a new SeedCommand
func NewSeedCommand() *SeedCommand {
	return &SeedCommand{Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load the sample authors and books. Does nothing when the catalog already has authors.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the seed command
func (cmd *SeedCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	created, err := db.Seed()
	if err != nil {
		return err
	}

	if created == 0 {
		fmt.Fprintf(cmd.Out, "Catalog in %s already has authors, nothing seeded\n", cmd.DatabasePath)
		return nil
	}
	fmt.Fprintf(cmd.Out, "Seeded %d authors into %s\n", created, cmd.DatabasePath)
	return nil
}
