package translate

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicTranslator implements Translator using Anthropic Claude.
type AnthropicTranslator struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
}

func NewAnthropicTranslator(opts Options) (*AnthropicTranslator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(opts.APIKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &AnthropicTranslator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (t *AnthropicTranslator) Translate(
	ctx context.Context,
	items []Item,
) ([]Reply, error) {
	return translateInBatches(
		ctx,
		items,
		t.options.batchSize(),
		t.translateBatch,
	)
}

func (t *AnthropicTranslator) translateBatch(
	ctx context.Context,
	items []Item,
) ([]Reply, error) {
	message, err := t.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     t.model,
			MaxTokens: 4096,
			System: []anthropic.TextBlockParam{
				{Text: SystemPrompt(t.options.TargetLanguage)},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(UserPrompt(items)),
				),
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}

	if message == nil || len(message.Content) == 0 {
		return nil, fmt.Errorf("empty response from Anthropic")
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}
	if responseText == "" {
		return nil, fmt.Errorf("no text in Anthropic response")
	}

	return parseBatchReply(responseText, len(items))
}
