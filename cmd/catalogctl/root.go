package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rpupo63/artist-portfolio-backend/config"
	"github.com/rpupo63/artist-portfolio-backend/database"
)

type commandContext struct {
	dataDir string
	db      *database.Database
}

// open lazily builds the Database for the configured data directory.
func (c *commandContext) open() database.Database {
	if c.db == nil {
		db := database.New(c.dataDir)
		c.db = &db
	}
	return *c.db
}

func (c *commandContext) close() {
	if c.db != nil {
		_ = c.db.Close()
		c.db = nil
	}
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect and maintain the portfolio catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("data-dir") {
				if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
					return err
				}
				ctx.dataDir = config.GetString(config.New(), "DATA_DIR", ctx.dataDir)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.dataDir, "data-dir", "data", "Directory holding projects.json (defaults to DATA_DIR)")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newMigrateMediaCommand(ctx))
	rootCmd.AddCommand(newRepairCommand(ctx))
	rootCmd.AddCommand(newRemoveMediaCommand(ctx))

	return rootCmd
}
