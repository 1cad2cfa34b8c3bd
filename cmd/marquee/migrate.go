package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marquee/marquee/internal/database"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := root.load()
				if err != nil {
					return err
				}
				db, applied, err := openDatabase(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer db.Close()

				fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := root.load()
				if err != nil {
					return err
				}
				db, err := database.New(cfg.Database.Path)
				if err != nil {
					return err
				}
				defer db.Close()

				if err := db.MigrateDown(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "rolled back 1 migration")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := root.load()
				if err != nil {
					return err
				}
				db, err := database.New(cfg.Database.Path)
				if err != nil {
					return err
				}
				defer db.Close()

				statuses, err := db.MigrationStatus(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tNAME\tSTATE\tAPPLIED AT")
				for _, s := range statuses {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Version, s.Name, state, s.AppliedAt)
				}
				return w.Flush()
			},
		},
	)

	return cmd
}
