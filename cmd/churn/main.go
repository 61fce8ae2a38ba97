// Package main is the entry point for the churn CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cognicore/churn/pkg/churn"
	"github.com/cognicore/churn/pkg/churn/config"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the churn CLI.
var rootCmd = &cobra.Command{
	Use:   "churn",
	Short: "Generate synthetic news headlines from a source text",
	Long: `churn rewrites template headlines from a corpus, swapping their object
(and sometimes their subject) for nouns taken from a source text or from a
curated word list. Headlines containing blacklisted terms are dropped.

Configuration is read from ./churn.yaml or ~/.config/churn/config.yaml and
can be overridden with CHURN_* environment variables and flags.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./churn.yaml or ~/.config/churn/config.yaml)")
	flags.String("corpus", "", "template headline corpus")
	flags.String("format", config.FormatText, "corpus format: text, jsonl or sqlite")
	flags.String("lang", "en", "language: en or nl")
	flags.String("archive", "", "sqlite database that receives generated headlines")
	flags.BoolP("verbose", "v", false, "log every generation step")

	viper.BindPFlag("corpus.path", flags.Lookup("corpus"))
	viper.BindPFlag("corpus.format", flags.Lookup("format"))
	viper.BindPFlag("language", flags.Lookup("lang"))
	viper.BindPFlag("archive", flags.Lookup("archive"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("churn")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "churn"))
		}
	}

	// .env is optional; it only feeds the CHURN_* overrides below
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error reading .env:", err)
	}

	def := config.Default()
	viper.SetDefault("stash_size", def.StashSize)
	viper.SetDefault("subject_one_in", def.SubjectOneIn)
	viper.SetDefault("max_attempts", def.MaxAttempts)
	viper.SetDefault("blacklist", def.Blacklist)
	viper.SetDefault("analyzer.kind", def.Analyzer.Kind)
	viper.SetDefault("analyzer.timeout", def.Analyzer.Timeout)

	viper.SetEnvPrefix("CHURN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged viper settings over the defaults.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("%w: %v", churn.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// openEngine loads the configured components and builds an engine. The
// returned components must be closed by the caller.
func openEngine(ctx context.Context) (*churn.Engine, *config.Components, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	loader := &config.Loader{Config: cfg, Logger: slog.Default()}
	comp, err := loader.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	engine, err := churn.New(loader.Options(comp))
	if err != nil {
		comp.Close()
		return nil, nil, err
	}
	return engine, comp, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
