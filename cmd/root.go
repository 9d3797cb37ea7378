// Package cmd provides the scratchbook CLI.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/scratchbook/codebook"
	"github.com/blackwell-systems/scratchbook/config"
	"github.com/blackwell-systems/scratchbook/logs"
	"github.com/blackwell-systems/scratchbook/resolve"
)

var rootCmd = &cobra.Command{
	Use:   "scratchbook",
	Short: "Compile and classify DJ scratch formulas",
	Long: `Scratchbook turns scratch notation into element sequences. Formulas combine
elementary names (b, f2S, tr3), tears (ft2), orbits (b_b) and codebook aliases
with concatenation, repetition, rotation, scaling and flips.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .scratchbook.yaml)")
	flags.String("codebook", "", "codebook file (.yaml, .yml, .json, .toml or .cue)")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.StringP("format", "o", "", "output format: text, yaml or json")
	flags.Bool("journal", false, "also log to the systemd journal")

	_ = viper.BindPFlag("codebook", flags.Lookup("codebook"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("format", flags.Lookup("format"))
	_ = viper.BindPFlag("journal", flags.Lookup("journal"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".scratchbook")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// env is what every subcommand works with.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	resolver *resolve.Resolver
}

// setup loads config, builds the logger and opens the codebook.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, _ := logs.ParseLevel(cfg.LogLevel)
	logger := logs.New(logs.Options{
		Writer:  cmd.ErrOrStderr(),
		Level:   level,
		Journal: cfg.Journal,
	})

	var cb *codebook.Codebook
	if cfg.Codebook != "" {
		cb, err = codebook.LoadFile(cfg.Codebook)
		if err != nil {
			return nil, fmt.Errorf("open codebook: %w", err)
		}
		logger.Debug("codebook loaded", "path", cfg.Codebook, "entries", cb.Len(), "version", cb.Version())
	}

	opts := []resolve.Option{resolve.WithLogger(logger)}
	if !cfg.Memo {
		opts = append(opts, resolve.WithoutMemo())
	}
	return &env{
		cfg:      cfg,
		logger:   logger,
		resolver: resolve.New(cb, opts...),
	}, nil
}

// spanned tags the command's log records with a fresh span.
func spanned(cmd *cobra.Command) context.Context {
	ctx, _ := logs.NewSpan(cmd.Context())
	return ctx
}
