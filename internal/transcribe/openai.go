package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/BIBIYES/VideoTranslate/internal/audio"
	"github.com/BIBIYES/VideoTranslate/internal/subtitle"
)

// OpenAITranscriber implements Transcriber using the OpenAI Audio API.
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

// verbose_json response structure from Whisper
type whisperVerboseResponse struct {
	Text     string       `json:"text"`
	Segments []rawSegment `json:"segments"`
	Language string       `json:"language"`
	Duration float64      `json:"duration"`
}

func NewOpenAITranscriber(opts Options) (*OpenAITranscriber, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(opts.APIKey))

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (t *OpenAITranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	duration, _ := audio.Duration(audioPath)

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"segment"},
	}

	if t.options.Language != "" {
		params.Language = openai.String(t.options.Language)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	segments, language, err := parseVerboseJSON(resp.RawJSON(), duration)
	if err != nil {
		// The API returned plain text without segment timings; keep the
		// full transcript as one segment spanning the whole file.
		segments = []subtitle.Segment{{
			Index: 1,
			Start: 0,
			End:   duration,
			Text:  strings.TrimSpace(resp.Text),
		}}
		language = t.options.Language
	}

	return &Result{
		Segments: segments,
		Language: language,
		Duration: duration,
	}, nil
}

func parseVerboseJSON(
	rawJSON string,
	fallbackDuration time.Duration,
) ([]subtitle.Segment, string, error) {
	if rawJSON == "" {
		return nil, "", fmt.Errorf("empty response")
	}

	var verboseResp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &verboseResp); err != nil {
		return nil, "", fmt.Errorf(
			"failed to parse verbose_json response: %w",
			err,
		)
	}

	if len(verboseResp.Segments) == 0 {
		if verboseResp.Text == "" {
			return nil, "", fmt.Errorf("no segments or text in response")
		}
		dur := fallbackDuration
		if verboseResp.Duration > 0 {
			dur = subtitle.DurationFromSeconds(verboseResp.Duration)
		}
		return []subtitle.Segment{{
			Index: 1,
			Start: 0,
			End:   dur,
			Text:  strings.TrimSpace(verboseResp.Text),
		}}, verboseResp.Language, nil
	}

	return numberSegments(verboseResp.Segments), verboseResp.Language, nil
}
