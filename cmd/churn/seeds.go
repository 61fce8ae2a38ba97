package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "Print the seed groups of a source text as YAML",
	Long: `Extract the noun phrases of a source text, grouped by their head noun.
The output can be edited and passed back with 'churn curate --approved'.`,
	RunE: runSeeds,
}

func init() {
	seedsCmd.Flags().StringP("input", "i", "-", "source text file (- for stdin)")
	rootCmd.AddCommand(seedsCmd)
}

func runSeeds(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	input, _ := cmd.Flags().GetString("input")

	text, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	engine, comp, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer comp.Close()

	groups, err := engine.Extract(ctx, text)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	return enc.Encode(groups)
}
