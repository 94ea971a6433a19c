// Package config loads and persists the MiniCouncil configuration file.
package config

// Config is the root configuration.
type Config struct {
	Provider  ProviderConfig  `yaml:"provider"`
	Agent     AgentConfig     `yaml:"agent"`
	Workspace WorkspaceConfig `yaml:"workspace"`
}

// ProviderConfig configures the model endpoint. APIKey falls back to the
// OPENROUTER_API_KEY environment variable when empty. SiteURL and SiteName
// become the optional HTTP-Referer / X-Title headers OpenRouter uses for
// rankings.
type ProviderConfig struct {
	APIKey       string            `yaml:"api_key"`
	APIBase      string            `yaml:"api_base"`
	SiteURL      string            `yaml:"site_url"`
	SiteName     string            `yaml:"site_name"`
	ExtraHeaders map[string]string `yaml:"extra_headers"`
}

// AgentConfig configures conversation runs.
type AgentConfig struct {
	Model        string  `yaml:"model"`
	MaxTokens    int     `yaml:"max_tokens"`
	Temperature  float64 `yaml:"temperature"`
	MaxTurns     int     `yaml:"max_turns"` // 0 = unbounded
	SystemPrompt string  `yaml:"system_prompt"`
}

// WorkspaceConfig configures where file tools operate. Root is what relative
// tool paths resolve against; AllowedDir, when set, is a hard boundary no
// resolved path may escape.
type WorkspaceConfig struct {
	Root       string `yaml:"root"`
	AllowedDir string `yaml:"allowed_dir"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			APIBase: "https://openrouter.ai/api/v1",
		},
		Agent: AgentConfig{
			Model:       "openai/gpt-4o-mini",
			MaxTokens:   4096,
			Temperature: 0.7,
			MaxTurns:    20,
		},
	}
}
