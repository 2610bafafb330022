package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mcoot/mafiagame-go/internal/factory"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	v := newViper()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "mafia",
		Short: "Moderate forum mafia games",
		Long: `mafia runs the rules of forum mafia games: players and moderators,
the day/night cycle, votes with automatic lynching, and role actions.

Games are kept in a store selected by --store: ":memory:", a JSON file
path, or a redis:// URL.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			loaded, err := LoadConfig(v, configFile)
			if err != nil {
				return err
			}
			cfg = loaded

			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.Level(),
			})).With(
				slog.String("command_id", uuid.NewString()),
				slog.String("command", cmd.CommandPath()),
			)

			app, err = factory.New(factory.Config{
				Destination: cfg.Store,
				Logger:      logger,
			})
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			err := app.Close()
			app = nil
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String(keyStore, cfg.Store, "Store destination: :memory:, file path or redis:// URL (env: MAFIA_STORE)")
	rootCmd.PersistentFlags().StringP(keyOutput, "o", cfg.Output, "Output format: text, json (env: MAFIA_OUTPUT)")
	rootCmd.PersistentFlags().String(keyLogLevel, cfg.LogLevel, "Log level: debug, info, warn, error (env: MAFIA_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolP(keyVerbose, "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newVoteCmd())
	rootCmd.AddCommand(newNoLynchCmd())
	rootCmd.AddCommand(newUnvoteCmd())
	rootCmd.AddCommand(newTallyCmd())
	rootCmd.AddCommand(newActionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if app != nil {
			_ = app.Close()
		}
		NewOutput(cfg.Output, rootCmd.OutOrStdout()).PrintError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
