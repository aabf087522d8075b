// Package inference contains the provider clients that carry a
// decision.Request to an external model and bring back its reply.
package inference

import (
	"errors"
	"os"
	"strings"

	"verdict/internal/decision"
)

var (
	// ErrMissingCredential is returned when the credential variable is unset or blank.
	ErrMissingCredential = errors.New("API key not set")
	// ErrEmptyResponse is returned when the provider answered without any candidate.
	ErrEmptyResponse = errors.New("no choices in response")
	// ErrUnknownProvider is returned by New for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown inference provider")
)

// CredentialFunc returns the credential to authenticate one call with.
type CredentialFunc func() string

// EnvCredential reads the named environment variable each time it is called.
func EnvCredential(name string) CredentialFunc {
	return func() string {
		return strings.TrimSpace(os.Getenv(name))
	}
}

// StaticCredential always returns key.
func StaticCredential(key string) CredentialFunc {
	return func() string { return key }
}

var (
	_ decision.Invoker = (*Gemini)(nil)
	_ decision.Invoker = (*OpenAI)(nil)
)
