package eventscout

import "sort"

// Backend identifies the client implementation that talks to a provider.
type Backend string

// Backend constants.
const (
	// BackendOpenAI speaks the OpenAI chat completions protocol.
	BackendOpenAI Backend = "openai"

	// BackendGemini speaks the Gemini API.
	BackendGemini Backend = "gemini"
)

// DefaultProvider is used when no provider is configured.
const DefaultProvider = "github"

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// ProviderConfig describes how to reach a completion provider. Providers
// differ only in endpoint and credential, so they are table entries rather
// than separate client types.
type ProviderConfig struct {
	// Name is the value accepted by --provider / AI_PROVIDER.
	Name string

	// Label is the human-readable provider name used in messages.
	Label string

	// BaseURL is the default API endpoint. Empty means the client default.
	BaseURL string

	// BaseURLEnv optionally overrides BaseURL from the environment.
	BaseURLEnv string

	// CredentialEnv names the environment variable holding the API key.
	CredentialEnv string

	// Backend selects the client implementation.
	Backend Backend

	// DefaultModel overrides DefaultModel for this provider.
	DefaultModel string
}

// Providers lists the supported completion providers by name.
var Providers = map[string]ProviderConfig{
	"github": {
		Name:          "github",
		Label:         "GitHub Models",
		BaseURL:       "https://models.inference.ai.azure.com",
		CredentialEnv: "GITHUB_TOKEN",
		Backend:       BackendOpenAI,
	},
	"dashscope": {
		Name:          "dashscope",
		Label:         "DashScope",
		BaseURL:       "https://dashscope.aliyuncs.com/compatible-mode/v1",
		BaseURLEnv:    "DASHSCOPE_BASE_URL",
		CredentialEnv: "DASHSCOPE_API_KEY",
		Backend:       BackendOpenAI,
	},
	"openai": {
		Name:          "openai",
		Label:         "OpenAI",
		BaseURL:       "https://api.openai.com/v1",
		BaseURLEnv:    "OPENAI_BASE_URL",
		CredentialEnv: "OPENAI_API_KEY",
		Backend:       BackendOpenAI,
	},
	"gemini": {
		Name:          "gemini",
		Label:         "Gemini",
		CredentialEnv: "GEMINI_API_KEY",
		Backend:       BackendGemini,
		DefaultModel:  "gemini-2.5-flash",
	},
}

// ProviderNames returns the supported provider names in sorted order.
func ProviderNames() []string {
	names := make([]string, 0, len(Providers))
	for name := range Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupProvider returns the configuration for the named provider.
// Returns EINVALID if the provider is unknown.
func LookupProvider(name string) (ProviderConfig, error) {
	p, ok := Providers[name]
	if !ok {
		return ProviderConfig{}, Errorf(EINVALID, "unknown AI provider %q (supported: %v)", name, ProviderNames())
	}
	return p, nil
}

// ProviderCredentials are the resolved settings for calling a provider.
type ProviderCredentials struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Resolve reads the credential and endpoint override using getenv. model may
// be empty to use the provider's default. Returns ECONFIG when the credential
// is missing, before any network call is attempted.
func (p ProviderConfig) Resolve(getenv func(string) string, model string) (*ProviderCredentials, error) {
	apiKey := getenv(p.CredentialEnv)
	if apiKey == "" {
		return nil, Errorf(ECONFIG, "%s API key not configured. Please set %s environment variable.", p.Label, p.CredentialEnv)
	}

	baseURL := p.BaseURL
	if p.BaseURLEnv != "" {
		if v := getenv(p.BaseURLEnv); v != "" {
			baseURL = v
		}
	}

	if model == "" {
		model = p.DefaultModel
	}
	if model == "" {
		model = DefaultModel
	}

	return &ProviderCredentials{APIKey: apiKey, BaseURL: baseURL, Model: model}, nil
}
