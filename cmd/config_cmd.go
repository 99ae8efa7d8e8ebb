package cmd

import (
	"fmt"

	"github.com/theirongolddev/finpulse/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	path := configPath()
	fmt.Printf("  Config file: %s\n", path)
	if config.Exists(path) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	if len(cfg.Server.CORSOrigins) > 0 {
		fmt.Printf("    CORS origins:  %v\n", cfg.Server.CORSOrigins)
	}
	fmt.Println()

	fmt.Println("  [Database]")
	fmt.Printf("    Path: %s\n", cfg.DBPath())
	fmt.Println()

	fmt.Println("  [Advisor]")
	fmt.Printf("    Provider:    %s\n", cfg.Advisor.Provider)
	if cfg.Advisor.Model != "" {
		fmt.Printf("    Model:       %s\n", cfg.Advisor.Model)
	}
	if apiKey := config.GetAdvisorAPIKey(cfg); apiKey != "" {
		fmt.Printf("    API key:     %s\n", maskAPIKey(apiKey))
	} else {
		fmt.Println("    API key:     not configured (advice disabled)")
	}
	fmt.Printf("    Temperature: %.1f\n", cfg.Advisor.Temperature)
	fmt.Printf("    Max tokens:  %d\n", cfg.Advisor.MaxTokens)
	fmt.Printf("    Timeout:     %s\n", cfg.Advisor.Timeout())
	fmt.Println()

	fmt.Println("  [Identity]")
	fmt.Printf("    Mode:          %s\n", cfg.Identity.Mode)
	switch cfg.Identity.Mode {
	case config.IdentityClerk:
		if cfg.Identity.ClerkSecretKey != "" {
			fmt.Printf("    Clerk key:     %s\n", maskAPIKey(cfg.Identity.ClerkSecretKey))
		} else {
			fmt.Println("    Clerk key:     not configured")
		}
	case config.IdentityJWT:
		if cfg.Identity.JWTIssuer != "" {
			fmt.Printf("    JWT issuer:    %s\n", cfg.Identity.JWTIssuer)
		}
	}
	fmt.Printf("    Cache TTL:     %s\n", cfg.Identity.CacheTTL())
	fmt.Printf("    Local subject: %s\n", cfg.Identity.LocalSubject)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:       %s\n", cfg.Log.Level)
	fmt.Printf("    Development: %v\n", cfg.Log.Development)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `finpulse setup` to reconfigure.")
	return nil
}
