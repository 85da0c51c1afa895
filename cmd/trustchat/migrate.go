package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/NeuralTrust/TrustChat/pkg/infra/database"
	"github.com/spf13/cobra"
)

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the policies database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(*configPath, func(db *database.DB) error {
					return db.Migrate()
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(*configPath, func(db *database.DB) error {
					statuses, err := database.NewMigrationsManager(db.DB).Status()
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tAPPLIED")
					for _, s := range statuses {
						fmt.Fprintf(w, "%s\t%s\t%t\n", s.ID, s.Name, s.Applied)
					}
					return w.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(*configPath, func(db *database.DB) error {
					id, err := database.NewMigrationsManager(db.DB).RollbackLast()
					if err != nil {
						return err
					}
					if id == "" {
						fmt.Fprintln(cmd.OutOrStdout(), "nothing to roll back")
						return nil
					}
					fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s\n", id)
					return nil
				})
			},
		},
	)
	return cmd
}

func withDatabase(configPath string, fn func(db *database.DB) error) error {
	cfg, logger, closeLog, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := database.Open(logger, databaseConfig(cfg))
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
