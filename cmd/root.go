// Package cmd implements the finpulse CLI commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/theirongolddev/finpulse/internal/advisor"
	"github.com/theirongolddev/finpulse/internal/config"
	"github.com/theirongolddev/finpulse/internal/finance"
	"github.com/theirongolddev/finpulse/internal/logger"
	"github.com/theirongolddev/finpulse/internal/store"
	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig   string
	flagDBPath   string
	flagUser     string
	flagQuiet    bool
	flagLogLevel string
)

// cfg is the configuration loaded before every command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:               "finpulse",
	Short:             "Personal finance analysis and advice",
	Long:              "Track income, expenses and balances, score your financial health, and get advice.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
	RunE:              runAnalyze,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "Local user subject (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().Bool("json", false, "Output JSON")
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.ConfigPath()
}

// loadConfig reads configuration and initializes the logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.LoadFile(configPath())
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		loaded.Database.Path = flagDBPath
	}
	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
	}
	cfg = loaded
	theme.SetActive(cfg.Appearance.Theme)

	return logger.Init(cfg.Log.Development, logger.LogLevel(cfg.Log.Level))
}

// subject is the identity CLI commands act as.
func subject() string {
	if flagUser != "" {
		return flagUser
	}
	return cfg.Identity.LocalSubject
}

// openService opens the store and builds the finance service. The returned
// func closes the store.
func openService() (*finance.Service, func(), error) {
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, err
	}

	opts := []finance.Option{finance.WithLogger(logger.Get())}
	if adv := newAdvisor(cfg); adv != nil {
		opts = append(opts, finance.WithAdvisor(adv))
	}

	closeFn := func() {
		if err := st.Close(); err != nil {
			logger.Get().Warn("closing store", zap.Error(err))
		}
	}
	return finance.New(st, opts...), closeFn, nil
}

// newAdvisor builds the advisor for the configured provider, or nil when no
// API key is available.
func newAdvisor(c config.Config) *advisor.Advisor {
	gc := advisor.ChatConfig{
		APIKey:  config.GetAdvisorAPIKey(c),
		BaseURL: c.Advisor.BaseURL,
		Model:   c.Advisor.Model,
		Timeout: c.Advisor.Timeout(),
	}

	var gen advisor.Generator
	switch c.Advisor.Provider {
	case config.ProviderAnthropic:
		if g := advisor.NewAnthropicGenerator(gc); g != nil {
			gen = g
		}
	default:
		if g := advisor.NewChatClient(gc); g != nil {
			gen = g
		}
	}
	if gen == nil {
		return nil
	}

	return advisor.New(gen,
		advisor.WithTemperature(c.Advisor.Temperature),
		advisor.WithMaxTokens(c.Advisor.MaxTokens),
	)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func progress(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
