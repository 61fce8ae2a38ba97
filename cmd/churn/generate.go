package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/churn/pkg/churn"
	"github.com/cognicore/churn/pkg/churn/rewrite"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate headlines from the nouns of a source text",
	Long: `Extract every noun phrase of the source text and rewrite template
headlines with them. Fewer than -n headlines may be printed: iterations that
hit a blacklisted term or find no usable template are skipped.

Examples:
  churn generate --input article.txt --corpus headlines.txt -n 20
  cat article.txt | churn generate --corpus headlines.txt`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("input", "i", "-", "source text file (- for stdin)")
	generateCmd.Flags().IntP("count", "n", 10, "number of iterations")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	input, _ := cmd.Flags().GetString("input")
	n, _ := cmd.Flags().GetInt("count")

	text, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	engine, comp, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer comp.Close()

	session, err := engine.SessionFromText(ctx, text)
	if err != nil {
		return err
	}
	return printHeadlines(cmd, session, n)
}

// printHeadlines runs a session and prints each headline as it arrives.
func printHeadlines(cmd *cobra.Command, session *churn.Session, n int) error {
	seq, err := session.Generate(cmd.Context(), n)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printed := 0
	for headline, err := range seq {
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rewrite.Capitalize(headline))
		printed++
	}
	slog.Info("generation finished", "session", session.ID, "requested", n, "printed", printed)
	return nil
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
