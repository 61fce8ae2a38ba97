package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/churn/pkg/churn/seeds"
)

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Generate headlines from a curated word list",
	Long: `Generate headlines from approved seed words instead of a raw text.

The approved file is either the YAML written by 'churn seeds' (optionally
narrowed with --keys) or a plain list with one word per line. Manual words
are added to the pool as given.

Examples:
  churn seeds -i article.txt > groups.yaml
  churn curate --approved groups.yaml --keys dog,garden -n 20
  churn curate --manual extra.txt -n 5`,
	RunE: runCurate,
}

func init() {
	curateCmd.Flags().String("approved", "", "approved seeds: YAML groups or one word per line")
	curateCmd.Flags().StringSlice("keys", nil, "group keys to keep from a YAML approved file (default: all)")
	curateCmd.Flags().String("manual", "", "extra words, one per line")
	curateCmd.Flags().IntP("count", "n", 10, "number of iterations")
	rootCmd.AddCommand(curateCmd)
}

func runCurate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	approvedPath, _ := cmd.Flags().GetString("approved")
	keys, _ := cmd.Flags().GetStringSlice("keys")
	manualPath, _ := cmd.Flags().GetString("manual")
	n, _ := cmd.Flags().GetInt("count")

	if approvedPath == "" && manualPath == "" {
		return fmt.Errorf("one of --approved or --manual is required")
	}

	var approved, manual []string
	if approvedPath != "" {
		data, err := os.ReadFile(approvedPath)
		if err != nil {
			return fmt.Errorf("read approved: %w", err)
		}
		approved = parseApproved(data, keys)
	}
	if manualPath != "" {
		data, err := os.ReadFile(manualPath)
		if err != nil {
			return fmt.Errorf("read manual: %w", err)
		}
		manual = parseLines(data)
	}

	engine, comp, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer comp.Close()

	session, err := engine.SessionFromApproved(ctx, approved, manual)
	if err != nil {
		return err
	}
	return printHeadlines(cmd, session, n)
}

// parseApproved reads a seed-group YAML document, keeping the variants of
// keys (all keys when none are given). Anything else is read as a plain
// word list.
func parseApproved(data []byte, keys []string) []string {
	var groups seeds.Groups
	if err := yaml.Unmarshal(data, &groups); err == nil && groups.Len() > 0 {
		if len(keys) == 0 {
			return groups.Pool().Words()
		}
		return groups.Select(keys...)
	}
	return parseLines(data)
}

// parseLines returns the non-blank, non-comment lines of data.
func parseLines(data []byte) []string {
	var out []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
