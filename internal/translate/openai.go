package translate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAITranslator implements Translator using Chat Completions. A custom
// API base lets it talk to any OpenAI-compatible endpoint.
type OpenAITranslator struct {
	client  openai.Client
	model   string
	options Options
}

func NewOpenAITranslator(opts Options) (*OpenAITranslator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.APIBase != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.APIBase))
	}
	client := openai.NewClient(clientOpts...)

	model := opts.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAITranslator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (t *OpenAITranslator) Translate(
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

func (t *OpenAITranslator) translateBatch(
	ctx context.Context,
	items []Item,
) ([]Reply, error) {
	completion, err := t.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(SystemPrompt(t.options.TargetLanguage)),
				openai.UserMessage(UserPrompt(items)),
			},
			Model:       t.model,
			Temperature: openai.Float(0.2),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}

	if completion == nil || len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	responseText := completion.Choices[0].Message.Content
	if responseText == "" {
		return nil, fmt.Errorf("no text in OpenAI response")
	}

	return parseBatchReply(responseText, len(items))
}
