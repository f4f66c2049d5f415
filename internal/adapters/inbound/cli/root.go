package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/anchor"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/config"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/gitinfo"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/history"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/logger"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/scanner"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/tui"
	"github.com/soon-migrate/soon-migrate/internal/application"
	"github.com/soon-migrate/soon-migrate/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

type rootFlags struct {
	dryRun     bool
	verbose    bool
	restore    bool
	showGuide  bool
	oracleOnly bool
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "soon-migrate [path]",
		Short: "Migrate Solana Anchor projects to the SOON Network",
		Long: "soon-migrate rewrites an Anchor project's Anchor.toml to target the SOON Network " +
			"and scans its Rust sources for price-oracle usage that needs to move to APRO.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, args, f)
		},
	}

	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show the rewritten Anchor.toml without writing it")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed progress and detection locations")
	cmd.Flags().BoolVar(&f.restore, "restore", false, "Restore Anchor.toml from the last backup")
	cmd.Flags().BoolVar(&f.showGuide, "show-guide", false, "Print the APRO integration guide")
	cmd.Flags().BoolVar(&f.oracleOnly, "oracle-only", false, "Only scan for oracles; leave Anchor.toml untouched")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Output the migration result as JSON")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI and prints any failure to stderr.
func Execute() error {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), tui.RenderError(err))
		return err
	}
	return nil
}

func newMigrationService(log *logrus.Logger) *application.MigrationService {
	return application.NewMigrationService(
		application.NewOracleService(scanner.New(), log),
		anchor.New(),
		config.New(),
		gitinfo.New(),
		history.New(),
		log,
	)
}

func resolvePath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return absPath, nil
}

func runMigrate(cmd *cobra.Command, args []string, f rootFlags) error {
	absPath, err := resolvePath(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	log := logger.New(cmd.ErrOrStderr(), f.verbose)
	svc := newMigrationService(log)

	if f.verbose && !f.jsonOutput {
		fmt.Fprint(out, tui.RenderBanner(absPath))
	}

	if f.restore {
		spin := tui.NewSpinner(cmd.ErrOrStderr(), "Restoring from backup...")
		spin.Start()
		if err := svc.Restore(absPath); err != nil {
			spin.Stop("Restore failed.")
			return err
		}
		spin.Stop("Backup restored successfully.")
		fmt.Fprint(out, tui.RenderRestore(filepath.Join(absPath, domain.AnchorConfigFile)))
		return nil
	}

	opts := domain.MigrationOptions{
		Path:       absPath,
		DryRun:     f.dryRun,
		Verbose:    f.verbose,
		OracleOnly: f.oracleOnly,
	}

	spin := tui.NewSpinner(cmd.ErrOrStderr(), "Migrating project...")
	spin.Start()
	result, err := svc.Run(opts)
	if err != nil {
		spin.Stop("Migration failed.")
		return err
	}
	spin.Stop("Migration completed successfully.")

	if f.jsonOutput {
		return renderJSON(out, result)
	}

	fmt.Fprint(out, tui.RenderReport(result.OracleReport, f.verbose))
	if f.showGuide {
		fmt.Fprint(out, "\n"+tui.RenderGuide(result.OracleReport))
	}
	fmt.Fprint(out, tui.RenderResult(result, opts))
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
