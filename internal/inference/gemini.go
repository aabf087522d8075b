package inference

import (
	"context"

	"google.golang.org/genai"

	"verdict/internal/decision"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-3-flash-preview"

// Gemini implements decision.Invoker using the Gemini API.
type Gemini struct {
	model      string
	baseURL    string
	credential CredentialFunc
}

// NewGemini returns an Invoker for the Gemini API. An empty model selects
// DefaultGeminiModel; an empty baseURL selects the SDK default endpoint.
func NewGemini(model, baseURL string, credential CredentialFunc) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{
		model:      model,
		baseURL:    baseURL,
		credential: credential,
	}
}

// Model returns the model identifier sent with each request.
func (g *Gemini) Model() string { return g.model }

// Invoke sends req to GenerateContent and returns the reply text.
// A client is built per call so the credential is read at call time.
func (g *Gemini) Invoke(ctx context.Context, req decision.Request) (string, error) {
	key := g.credential()
	if key == "" {
		return "", ErrMissingCredential
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      key,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.Query), generateConfig(req))
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	return resp.Text(), nil
}

func generateConfig(req decision.Request) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
		MaxOutputTokens:   req.MaxOutputTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(req.ThinkingBudget),
		},
	}
}
