package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/churn/pkg/churn/store/sqlite"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived headlines",
	Long: `Show the most recent headlines written to the archive database,
newest first. Use --session to show a single run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("db", "", "archive database (default: the configured archive)")
	historyCmd.Flags().String("session", "", "only show this session")
	historyCmd.Flags().IntP("limit", "k", 20, "number of headlines")
	historyCmd.Flags().Bool("sources", false, "also show the template and seed")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dbPath, _ := cmd.Flags().GetString("db")
	session, _ := cmd.Flags().GetString("session")
	k, _ := cmd.Flags().GetInt("limit")
	sources, _ := cmd.Flags().GetBool("sources")

	if dbPath == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbPath = cfg.Archive
	}
	if dbPath == "" {
		return fmt.Errorf("no archive configured: pass --db or set archive")
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	rows, err := st.RecentGenerated(ctx, session, k)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, g := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.CreatedAt.Local().Format(time.DateTime), g.SessionID, g.Text)
		if sources {
			fmt.Fprintf(w, "\t\t  template: %s\n\t\t  seed: %s\n", g.Template, g.Seed)
		}
	}
	return w.Flush()
}
