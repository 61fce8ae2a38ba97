package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/churn/pkg/churn"
	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/config"
	"github.com/cognicore/churn/pkg/churn/stoplist"
	"github.com/cognicore/churn/pkg/churn/store/sqlite"
)

var stopwordsCmd = &cobra.Command{
	Use:   "stopwords [word...]",
	Short: "Show or extend the curated stopword list",
	Long: `Curated stopwords are head nouns that are never used as seeds. They are
kept per language in a sqlite database and merged with the built-in list
whenever the database is the configured corpus or archive.

Arguments are added to the list; --remove drops words from it. The
resulting list is printed.

With --suggest, the given source texts are analyzed instead and the seed
roots that occur in most of them are printed as candidates.

Examples:
  churn stopwords --db churn.db year people
  churn stopwords --suggest a.txt,b.txt,c.txt`,
	RunE: runStopwords,
}

func init() {
	stopwordsCmd.Flags().String("db", "churn.db", "sqlite database")
	stopwordsCmd.Flags().StringSlice("remove", nil, "words to remove from the list")
	stopwordsCmd.Flags().StringSlice("suggest", nil, "source texts to mine for generic roots")
	stopwordsCmd.Flags().Float64("min-df", stoplist.DefaultThresholds().DFPercent, "minimum share of texts (percent) for a suggestion")
	rootCmd.AddCommand(stopwordsCmd)
}

func runStopwords(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dbPath, _ := cmd.Flags().GetString("db")
	remove, _ := cmd.Flags().GetStringSlice("remove")
	if suggest, _ := cmd.Flags().GetStringSlice("suggest"); len(suggest) > 0 {
		minDF, _ := cmd.Flags().GetFloat64("min-df")
		return runSuggest(cmd, suggest, minDF)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lang, err := analysis.ParseLanguage(cfg.Language)
	if err != nil {
		return err
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	current, err := st.Stoplist(ctx, lang)
	if err != nil {
		return err
	}
	if len(args) > 0 || len(remove) > 0 {
		if err := st.UpsertStoplist(ctx, lang, editWords(current, args, remove)); err != nil {
			return err
		}
	}

	words, err := st.Stoplist(ctx, lang)
	if err != nil {
		return err
	}
	for _, w := range words {
		fmt.Fprintln(cmd.OutOrStdout(), w)
	}
	return nil
}

// editWords returns current plus add, minus remove. Words are compared
// lowercased.
func editWords(current, add, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, w := range remove {
		drop[strings.ToLower(strings.TrimSpace(w))] = true
	}
	seen := make(map[string]bool, len(current)+len(add))
	var out []string
	for _, w := range append(append([]string(nil), current...), add...) {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || drop[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func runSuggest(cmd *cobra.Command, paths []string, minDF float64) error {
	ctx := cmd.Context()
	texts := make([]string, 0, len(paths))
	for _, p := range paths {
		text, err := readInput(cmd.InOrStdin(), p)
		if err != nil {
			return err
		}
		texts = append(texts, text)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	comp, err := (&config.Loader{Config: cfg, Logger: slog.Default()}).LoadAnalysis(ctx)
	if err != nil {
		return err
	}
	defer comp.Close()

	th := stoplist.DefaultThresholds()
	th.DFPercent = minDF
	cands, err := churn.SuggestStopwords(ctx, comp.Analyzer, comp.Stopwords, texts, th)
	if err != nil {
		return err
	}
	if len(cands) == 0 && len(texts) < th.MinTexts {
		return fmt.Errorf("need at least %d texts to suggest stopwords, got %d", th.MinTexts, len(texts))
	}
	for _, c := range cands {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f%%\n", c.Token, c.DFPercent)
	}
	return nil
}
