package inference

import (
	"fmt"

	"verdict/internal/config"
	"verdict/internal/decision"
)

// New returns the Invoker selected by cfg. The credential is read from
// cfg.CredentialEnv on every call.
func New(cfg *config.Config) (decision.Invoker, error) {
	credential := EnvCredential(cfg.CredentialEnv)
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGemini(cfg.Model, cfg.ProviderURL, credential), nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.Model, cfg.ProviderURL, credential), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
