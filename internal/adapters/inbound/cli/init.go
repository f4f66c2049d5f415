package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/config"
	"github.com/soon-migrate/soon-migrate/internal/domain"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .soon-migrate.yaml configuration file",
		Long:  "Create a .soon-migrate.yaml with the default scan settings for an Anchor project.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := resolvePath(args)
			if err != nil {
				return err
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			content, err := config.Render(starterConfig())
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, content, 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .soon-migrate.yaml")

	return cmd
}

func starterConfig() domain.ProjectConfig {
	return domain.ProjectConfig{
		ExcludePaths:  []string{},
		IgnoreOracles: []string{},
		MaxDepth:      domain.DefaultMaxDepth,
	}
}
