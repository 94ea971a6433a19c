// Package dependency wires core MiniCouncil services using go.uber.org/dig.
//
// The registry is an explicit instance constructed here and handed to each
// orchestrator; there is no global registry, so a process can host any
// number of isolated conversations.
package dependency

import (
	"log/slog"

	"go.uber.org/dig"

	"github.com/Void-n-Null/MiniCouncil/internal/agent"
	"github.com/Void-n-Null/MiniCouncil/internal/config"
	"github.com/Void-n-Null/MiniCouncil/internal/providers"
	"github.com/Void-n-Null/MiniCouncil/internal/schema"
	"github.com/Void-n-Null/MiniCouncil/internal/session"
	"github.com/Void-n-Null/MiniCouncil/internal/tools"
	"github.com/Void-n-Null/MiniCouncil/internal/workspace"
)

// Container holds the resolved core service singletons. Callers use the
// typed getter methods; they never need to import dig directly.
type Container struct {
	provider schema.ModelProvider
	registry *tools.Registry
	settings agent.Settings
	prompt   string
	sessions *session.Store
}

func (c *Container) Provider() schema.ModelProvider { return c.provider }
func (c *Container) Registry() *tools.Registry      { return c.registry }
func (c *Container) Settings() agent.Settings       { return c.settings }
func (c *Container) Sessions() *session.Store       { return c.sessions }

// NewConversation returns a fresh transcript, seeded with the configured
// system prompt when one is set.
func (c *Container) NewConversation() *agent.Conversation {
	conv := agent.NewConversation()
	if c.prompt != "" {
		conv.AddSystem(c.prompt)
	}
	return conv
}

// NewOrchestrator builds an orchestrator over conv using the container's
// provider, registry, and settings.
func (c *Container) NewOrchestrator(conv *agent.Conversation) *agent.Orchestrator {
	return agent.New(c.provider, c.registry, conv, c.settings)
}

// New builds and wires all core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	for _, provide := range []any{
		func() *config.Config { return cfg },
		newProvider,
		newGuard,
		newRegistry,
		newSettings,
		newSessionStore,
	} {
		if err := d.Provide(provide); err != nil {
			return nil, err
		}
	}

	var result *Container
	err := d.Invoke(func(
		provider schema.ModelProvider,
		registry *tools.Registry,
		settings agent.Settings,
		sessions *session.Store,
	) {
		result = &Container{
			provider: provider,
			registry: registry,
			settings: settings,
			prompt:   cfg.Agent.SystemPrompt,
			sessions: sessions,
		}
	})
	return result, err
}

func newProvider(cfg *config.Config) (schema.ModelProvider, error) {
	if cfg.Provider.APIKey == "" {
		return nil, schema.NewConfigurationError(
			"no API key configured; set OPENROUTER_API_KEY or edit %s", config.ConfigPath())
	}
	return providers.New(providers.Params{
		APIKey:       cfg.Provider.APIKey,
		APIBase:      cfg.Provider.APIBase,
		DefaultModel: cfg.Agent.Model,
		SiteURL:      cfg.Provider.SiteURL,
		SiteName:     cfg.Provider.SiteName,
		ExtraHeaders: cfg.Provider.ExtraHeaders,
	}), nil
}

func newGuard(cfg *config.Config) *workspace.Guard {
	return workspace.NewGuard(cfg.Workspace.Root, cfg.Workspace.AllowedDir)
}

func newRegistry(guard *workspace.Guard) *tools.Registry {
	registry := tools.NewRegistry()
	n := registry.Discover(tools.DefaultFactories(guard))
	slog.Debug("tool discovery complete", "registered", n)
	return registry
}

func newSettings(cfg *config.Config) agent.Settings {
	return agent.Settings{
		Model:       cfg.Agent.Model,
		MaxTokens:   cfg.Agent.MaxTokens,
		Temperature: cfg.Agent.Temperature,
		MaxTurns:    cfg.Agent.MaxTurns,
	}
}

func newSessionStore() (*session.Store, error) {
	return session.NewStore(config.DataDir())
}
