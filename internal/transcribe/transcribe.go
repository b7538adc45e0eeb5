package transcribe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BIBIYES/VideoTranslate/internal/subtitle"
)

// Result holds the outcome of a transcription pass.
type Result struct {
	Segments []subtitle.Segment
	Language string
	Duration time.Duration
}

// Transcriber converts an audio file into timed subtitle segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// Provider selects a transcription backend.
type Provider string

const (
	ProviderWhisper Provider = "whisper"
	ProviderOpenAI  Provider = "openai"
)

// Options configures a transcription pass.
type Options struct {
	Model       string // Model size, name or local path (default "base")
	Language    string // Source language hint; empty means auto-detect
	Device      string // Inference device: auto, cpu, cuda (whisper provider)
	ComputeType string // Numeric precision, e.g. int8_float16 (whisper provider)
	VADFilter   bool   // Drop silent stretches before recognition
	APIKey      string // API key (openai provider)
}

// Factory creates a Transcriber for the given provider.
func Factory(provider Provider, opts Options) (Transcriber, error) {
	switch provider {
	case ProviderWhisper:
		return NewWhisperTranscriber(opts), nil
	case ProviderOpenAI:
		return NewOpenAITranscriber(opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// numberSegments converts raw (start, end, text) triples into 1-based-indexed
// subtitle segments, dropping empty text.
func numberSegments(raw []rawSegment) []subtitle.Segment {
	segments := make([]subtitle.Segment, 0, len(raw))
	index := 1
	for _, seg := range raw {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, subtitle.Segment{
			Index: index,
			Start: subtitle.DurationFromSeconds(seg.Start),
			End:   subtitle.DurationFromSeconds(seg.End),
			Text:  text,
		})
		index++
	}
	return segments
}

// rawSegment is a timed text triple as emitted by a recognition backend.
type rawSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
