package inference

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"verdict/internal/decision"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI implements decision.Invoker using the Chat Completions API. Any
// OpenAI-compatible endpoint (Groq, Ollama's /v1) works through baseURL.
type OpenAI struct {
	model      string
	baseURL    string
	credential CredentialFunc
}

// NewOpenAI returns an Invoker for an OpenAI-compatible endpoint.
func NewOpenAI(model, baseURL string, credential CredentialFunc) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		model:      model,
		baseURL:    baseURL,
		credential: credential,
	}
}

// Model returns the model identifier sent with each request.
func (c *OpenAI) Model() string { return c.model }

// Invoke sends the system instruction and query as a two-message chat and
// returns the first choice.
func (c *OpenAI) Invoke(ctx context.Context, req decision.Request) (string, error) {
	key := c.credential()
	if key == "" {
		return "", ErrMissingCredential
	}

	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	}
	if c.baseURL != "" {
		opts = append(opts, option.WithBaseURL(c.baseURL))
	}
	client := openai.NewClient(opts...)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemInstruction),
			openai.UserMessage(req.Query),
		},
		Temperature:         openai.Float(float64(req.Temperature)),
		MaxCompletionTokens: openai.Int(int64(req.MaxOutputTokens)),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}
