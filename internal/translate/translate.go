package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/BIBIYES/VideoTranslate/internal/subtitle"
)

// Item is a single subtitle line submitted for translation.
type Item struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Reply is one translated line as returned by a provider.
type Reply struct {
	Index       int    `json:"index"`
	Translation string `json:"translation"`
}

// Translator translates batches of subtitle lines.
type Translator interface {
	Translate(ctx context.Context, items []Item) ([]Reply, error)
}

// Provider selects a translation backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// DefaultBatchSize is the number of subtitle lines sent per translation
// request. Larger batches make replies long and flaky.
const DefaultBatchSize = 6

// Options configures a translation pass.
type Options struct {
	TargetLanguage string // Human-readable target language description
	Model          string // Provider model name
	APIBase        string // Custom API base URL (OpenAI-compatible endpoints)
	APIKey         string
	BatchSize      int // Lines per API request (default 6)
}

func (o Options) batchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return DefaultBatchSize
}

// Factory creates a Translator for the given provider.
func Factory(ctx context.Context, provider Provider, opts Options) (Translator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderOpenAI:
		return NewOpenAITranslator(opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(opts)
	case ProviderGemini:
		return NewGeminiTranslator(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

// ItemsFromSegments builds translation items keyed by subtitle index.
// Multi-line text is collapsed to single spaces so replies stay compact.
func ItemsFromSegments(segments []subtitle.Segment) []Item {
	items := make([]Item, len(segments))
	for i, seg := range segments {
		items[i] = Item{
			Index: seg.Index,
			Text:  strings.Join(strings.Fields(seg.Text), " "),
		}
	}
	return items
}

// Merge applies translated replies to segments by index. Segments without a
// reply keep their original text, so a run that failed partway still yields
// a complete document with already-translated batches applied.
func Merge(segments []subtitle.Segment, replies []Reply) []subtitle.Segment {
	translated := make(map[int]string, len(replies))
	for _, reply := range replies {
		text := strings.TrimSpace(reply.Translation)
		if text != "" {
			translated[reply.Index] = text
		}
	}

	merged := make([]subtitle.Segment, len(segments))
	for i, seg := range segments {
		if text, ok := translated[seg.Index]; ok {
			seg.Text = text
		}
		merged[i] = seg
	}
	return merged
}

// batchFunc translates one batch of items in a single API request.
type batchFunc func(ctx context.Context, items []Item) ([]Reply, error)

// translateInBatches runs fn over consecutive batches of items. On failure
// the replies from batches completed so far are returned alongside the
// error, so the caller's merge can keep what was already translated.
func translateInBatches(
	ctx context.Context,
	items []Item,
	size int,
	fn batchFunc,
) ([]Reply, error) {
	if len(items) == 0 {
		return []Reply{}, nil
	}

	batches, err := subtitle.Chunk(items, size)
	if err != nil {
		return nil, err
	}

	var allReplies []Reply
	for i, batch := range batches {
		replies, err := fn(ctx, batch)
		if err != nil {
			return allReplies, fmt.Errorf(
				"batch %d/%d failed: %w",
				i+1,
				len(batches),
				err,
			)
		}
		allReplies = append(allReplies, replies...)
	}

	return allReplies, nil
}

// SystemPrompt describes the translation task to the model.
func SystemPrompt(targetLanguage string) string {
	return "You are a professional subtitle translator. " +
		fmt.Sprintf(
			"Translate the given subtitle lines into %s, preserving the original meaning and tone; do not drop numbers or proper nouns. ",
			targetLanguage,
		) +
		"Return ONLY a JSON array where each element has an 'index' (number) and a 'translation' (string). " +
		"The 'index' values must match the input indices exactly. " +
		"Do not add any explanation or markdown formatting."
}

// UserPrompt lists the lines to translate in index|text form.
func UserPrompt(items []Item) string {
	var sb strings.Builder
	sb.WriteString("Subtitle lines to translate, one per line as index|text:\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("%d|%s\n", item.Index, item.Text))
	}
	sb.WriteString("Translate them and return the JSON array only.")
	return sb.String()
}
