package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	auditstore "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/tasks"
)

// PurgeCommand permanently removes soft-deleted authors without going
// through the task queue.
type PurgeCommand struct {
	DatabasePath string
	Retention    time.Duration
	AuditDir     string

	Out io.Writer
}

// NewPurgeCommand creates a new PurgeCommand
func NewPurgeCommand() *PurgeCommand {
	return &PurgeCommand{Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *PurgeCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("purge", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.DurationVar(&cmd.Retention, "retention", tasks.DefaultPurgeRetention, "Only purge authors deleted longer ago than this")
	fs.StringVar(&cmd.AuditDir, "audit-dir", "", "Directory for audit payload files (disabled when empty)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s purge [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Permanently remove deleted authors and their books.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Purge everything deleted more than a week ago:\n")
		fmt.Fprintf(os.Stderr, "  %s purge -retention 168h\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Retention <= 0 {
		return fmt.Errorf("retention must be positive, got %s", cmd.Retention)
	}
	return nil
}

// Run executes the purge command
func (cmd *PurgeCommand) Run(ctx context.Context) error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	recorder := audit.NewService(auditstore.NewRepository(db.DB), audit.NewAuditor(cmd.AuditDir))
	purge := tasks.PurgeDeletedAuthorsProcessor(authors.NewRepository(db.DB), recorder, zap.L())

	if err := purge(ctx, tasks.PurgeDeletedAuthorsTask{Retention: cmd.Retention}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Purged authors deleted more than %s ago from %s\n", cmd.Retention, cmd.DatabasePath)
	return nil
}
