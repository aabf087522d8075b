package decision

import (
	"verdict/internal/validation"
)

// SystemInstruction is sent with every query. It constrains the model to a
// single bare choice.
const SystemInstruction = `You are a deterministic decision engine.
The user provides a question (YES/NO) or multiple options.
Your task: Select exactly ONE best choice.

Absolute Rules:
1. Output ONLY the chosen option.
2. NO explanation.
3. NO punctuation.
4. NO context.
5. NO hedging.
6. Be authoritative.`

// Generation parameters fixed for every request.
const (
	Temperature     float32 = 0
	MaxOutputTokens int32   = 100
	// ThinkingBudget of zero disables provider-side deliberation.
	ThinkingBudget int32 = 0
)

// NoDecision replaces an empty answer.
const NoDecision = "NO DECISION"

// FallbackFailure is shown when a failure carries no message of its own.
const FallbackFailure = "System failure"

// Request is a provider-agnostic description of one inference call.
// Providers add their own model identifier and credential.
type Request struct {
	SystemInstruction string
	Query             string
	Temperature       float32
	MaxOutputTokens   int32
	ThinkingBudget    int32
}

// NewRequest builds the request for a user query. The query is trimmed;
// everything else is fixed.
func NewRequest(query string) Request {
	return Request{
		SystemInstruction: SystemInstruction,
		Query:             validation.NormalizeQuery(query),
		Temperature:       Temperature,
		MaxOutputTokens:   MaxOutputTokens,
		ThinkingBudget:    ThinkingBudget,
	}
}

// Resolve maps the result of one invocation to its terminal state.
func Resolve(text string, err error) State {
	if err != nil {
		msg := validation.NormalizeText(err.Error())
		if msg == "" {
			msg = FallbackFailure
		}
		return Failed(msg)
	}
	text = validation.NormalizeText(text)
	if text == "" {
		text = NoDecision
	}
	return Decided(text)
}
