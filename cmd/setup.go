package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finpulse/internal/config"
	"github.com/theirongolddev/finpulse/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues are the wizard answers before they are applied to a config.
type setupValues struct {
	provider     string
	apiKey       string
	model        string
	identityMode string
	addr         string
	theme        string
}

func runSetup(_ *cobra.Command, _ []string) error {
	vals := setupValues{
		provider:     cfg.Advisor.Provider,
		model:        cfg.Advisor.Model,
		identityMode: cfg.Identity.Mode,
		addr:         cfg.Server.Addr,
		theme:        cfg.Appearance.Theme,
	}
	existingKey := config.GetAdvisorAPIKey(cfg)
	keyHint := "Leave blank to keep the current key"
	if existingKey != "" {
		keyHint = "Current: " + maskAPIKey(existingKey) + ". Leave blank to keep it."
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to finpulse!").
				Description("Configure advice generation, API identity and appearance."),
			huh.NewSelect[string]().
				Title("Advice provider").
				Options(
					huh.NewOption("Groq (OpenAI-compatible chat completions)", config.ProviderGroq),
					huh.NewOption("Anthropic", config.ProviderAnthropic),
				).
				Value(&vals.provider),
			huh.NewInput().
				Title("Provider API key").
				Description(keyHint).
				EchoMode(huh.EchoModePassword).
				Value(&vals.apiKey),
			huh.NewInput().
				Title("Model").
				Description("Leave blank for the provider default").
				Value(&vals.model),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("API authentication").
				Options(
					huh.NewOption("None (single local user)", config.IdentityNone),
					huh.NewOption("Clerk sessions", config.IdentityClerk),
					huh.NewOption("HS256 JWT", config.IdentityJWT),
				).
				Value(&vals.identityMode),
			huh.NewInput().
				Title("API listen address").
				Value(&vals.addr).
				Validate(validateAddr),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	updated := applySetup(cfg, vals)
	path := configPath()
	if err := config.SaveFile(path, updated); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", path)
	fmt.Println("  Run `finpulse setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

// applySetup returns c with the wizard answers applied. A blank API key
// keeps the existing one.
func applySetup(c config.Config, v setupValues) config.Config {
	c.Advisor.Provider = v.provider
	c.Advisor.Model = strings.TrimSpace(v.model)
	if key := strings.TrimSpace(v.apiKey); key != "" {
		c.Advisor.APIKey = key
	}
	c.Identity.Mode = v.identityMode
	c.Server.Addr = strings.TrimSpace(v.addr)
	c.Appearance.Theme = v.theme
	return c
}

func validateAddr(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, ":") {
		return errors.New("use host:port, e.g. 127.0.0.1:5000")
	}
	return nil
}
