package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/marquee/marquee/internal/bookmarks"
)

func newBookmarksCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Inspect saved bookmarks",
	}

	var (
		query  string
		asJSON bool
	)

	list := &cobra.Command{
		Use:   "list",
		Short: "List bookmarks, most recent first",
		Example: `  marquee bookmarks list
  marquee bookmarks list --query incep --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			db, _, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			nop := zerolog.Nop()
			movies, err := bookmarks.NewStore(db.Conn(), &nop).List(cmd.Context())
			if err != nil {
				return err
			}
			movies = bookmarks.Filter(movies, query)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(movies)
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tRATING\tRELEASED\tSAVED")
			for _, m := range movies {
				fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t%s\n",
					m.ID, m.Title, m.VoteAverage, m.ReleaseDate, m.BookmarkedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "Fuzzy-match bookmark titles")
	list.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	cmd.AddCommand(list)
	return cmd
}
