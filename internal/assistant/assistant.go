package assistant

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts AI providers for market advice.
type Client interface {
	EnhanceAnalysis(ctx context.Context, input AnalysisInput) (AnalysisOutput, error)
	Chat(ctx context.Context, input ChatInput) (ChatOutput, error)
}

// AnalysisInput carries the rule-based analysis for the model to enrich.
type AnalysisInput struct {
	Category     string
	ProfileJSON  json.RawMessage
	AnalysisJSON json.RawMessage
}

// AnalysisOutput is the model's enriched commentary.
type AnalysisOutput struct {
	Insights []string `json:"insights"`
	Tips     []string `json:"tips"`
}

// ChatInput carries a consumer question plus catalog context.
type ChatInput struct {
	Question    string
	Category    string
	CatalogJSON json.RawMessage
}

// ChatOutput is the model's answer.
type ChatOutput struct {
	Answer string `json:"answer"`
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("assistant not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// EnhanceAnalysis returns ErrNotImplemented.
func (PlaceholderClient) EnhanceAnalysis(ctx context.Context, input AnalysisInput) (AnalysisOutput, error) {
	_ = ctx
	_ = input
	return AnalysisOutput{}, ErrNotImplemented
}

// Chat returns ErrNotImplemented.
func (PlaceholderClient) Chat(ctx context.Context, input ChatInput) (ChatOutput, error) {
	_ = ctx
	_ = input
	return ChatOutput{}, ErrNotImplemented
}

var _ Client = PlaceholderClient{}
