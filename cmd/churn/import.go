package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/corpus"
	"github.com/cognicore/churn/pkg/churn/store/sqlite"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load template headlines into a sqlite corpus",
	Long: `Read headlines from a text file (one per line) or a JSONL feed dump
and add them to a sqlite database. Duplicates are ignored. Point the corpus
at the database with --format sqlite afterwards.

Examples:
  churn import --db churn.db --from headlines.txt
  churn import --db churn.db --from hn.jsonl --from-format jsonl --lang en`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("db", "churn.db", "sqlite database")
	importCmd.Flags().String("from", "", "headline file to import")
	importCmd.Flags().String("from-format", "text", "input format: text or jsonl")
	importCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dbPath, _ := cmd.Flags().GetString("db")
	from, _ := cmd.Flags().GetString("from")
	format, _ := cmd.Flags().GetString("from-format")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lang, err := analysis.ParseLanguage(cfg.Language)
	if err != nil {
		return err
	}

	src, err := corpus.Open(from, corpus.Format(format), slog.Default())
	if err != nil {
		return err
	}
	headlines, err := src.ReadAll(ctx)
	if err != nil {
		return err
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	added, err := st.AddHeadlines(ctx, lang, headlines)
	if err != nil {
		return fmt.Errorf("import headlines: %w", err)
	}
	total, err := st.CountHeadlines(ctx, lang)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d headlines (%d %s headlines in %s)\n",
		added, len(headlines), total, lang, dbPath)
	return nil
}
