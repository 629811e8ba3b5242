// cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/rednote-cli/internal/config"
	"github.com/xkilldash9x/rednote-cli/internal/observability"
)

type contextKey string

const configKey contextKey = "config"

// flagBindings maps persistent flags onto their configuration keys.
var flagBindings = map[string]string{
	"output":     "output.path",
	"format":     "output.format",
	"cookies":    "session.cookie_file",
	"headless":   "browser.headless",
	"log-level":  "logger.level",
	"chrome-exe": "browser.exec_path",
}

// NewRootCommand builds a fresh command tree. Every invocation gets its own
// instance so flags never leak between runs.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "rednote-cli",
		Short:         "rednote-cli searches and extracts notes from Xiaohongshu (RedNote).",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			if err := initializeConfig(cmd, v, cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "rednote-cli"})
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("Starting rednote-cli", zap.String("version", Version))

			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml, then ~/.rednote/config.yaml)")
	flags.StringP("output", "o", "", "write results to this file instead of stdout")
	flags.StringP("format", "f", "json", "output format: json or jsonl")
	flags.String("cookies", "", "path to the exported cookie file")
	flags.Bool("headless", true, "run Chrome without a window")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("chrome-exe", "", "path to the Chrome executable")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newNoteCmd())
	rootCmd.AddCommand(newCommentsCmd())
	rootCmd.AddCommand(newExtractURLCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the command tree with a signal-aware context.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			observability.GetLogger().Warn("Operation aborted by signal.")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	observability.Sync()
	return err
}

// initializeConfig layers config file, REDNOTE_* environment variables and
// explicitly set flags over the defaults already present in v.
func initializeConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.rednote")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("REDNOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Only flags the user actually set override file and environment values.
	var bindErr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := flagBindings[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	return bindErr
}

// getConfig returns the configuration stored by PersistentPreRunE.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return cfg, nil
}
