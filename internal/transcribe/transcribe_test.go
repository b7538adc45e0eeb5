package transcribe

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestFactoryReturnsWhisperTranscriber(t *testing.T) {
	transcriber, err := Factory(ProviderWhisper, Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderWhisper) returned error: %v", err)
	}
	if _, ok := transcriber.(*WhisperTranscriber); !ok {
		t.Errorf("expected *WhisperTranscriber, got %T", transcriber)
	}
}

func TestFactoryReturnsOpenAITranscriber(t *testing.T) {
	transcriber, err := Factory(ProviderOpenAI, Options{APIKey: "fake-key"})
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := transcriber.(*OpenAITranscriber); !ok {
		t.Errorf("expected *OpenAITranscriber, got %T", transcriber)
	}
}

func TestFactoryOpenAIRequiresAPIKey(t *testing.T) {
	if _, err := Factory(ProviderOpenAI, Options{}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	if _, err := Factory(Provider("unknown"), Options{}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestWhisperDefaults(t *testing.T) {
	tr := NewWhisperTranscriber(Options{})
	if tr.options.Model != "base" {
		t.Errorf("default model = %q, want base", tr.options.Model)
	}
	if tr.options.Device != "auto" {
		t.Errorf("default device = %q, want auto", tr.options.Device)
	}
	if tr.options.ComputeType != "int8_float16" {
		t.Errorf("default compute type = %q, want int8_float16", tr.options.ComputeType)
	}
}

func TestProcessErrorCarriesOutput(t *testing.T) {
	err := &ProcessError{
		Command: "whisper-ctranslate2",
		Stdout:  "loading model",
		Stderr:  "CUDA out of memory",
		Err:     fmt.Errorf("exit status 1"),
	}
	msg := err.Error()
	for _, want := range []string{"whisper-ctranslate2", "loading model", "CUDA out of memory"} {
		if !strings.Contains(msg, want) {
			t.Errorf("ProcessError message missing %q:\n%s", want, msg)
		}
	}
}

func TestParseWhisperJSON(t *testing.T) {
	data := []byte(`{
		"text": "Hello world.",
		"segments": [
			{"start": 0.0, "end": 1.5, "text": " Hello"},
			{"start": 1.5, "end": 3.0, "text": " world."},
			{"start": 3.0, "end": 3.2, "text": "   "}
		],
		"language": "en"
	}`)

	segments, language, err := parseWhisperJSON(data)
	if err != nil {
		t.Fatalf("parseWhisperJSON returned error: %v", err)
	}
	if language != "en" {
		t.Errorf("language = %q, want en", language)
	}
	// Whitespace-only segment is dropped; indices stay dense from 1.
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Index != 1 || segments[1].Index != 2 {
		t.Errorf("indices not 1-based dense: %+v", segments)
	}
	if segments[0].Text != "Hello" {
		t.Errorf("segment 0 text = %q, want trimmed %q", segments[0].Text, "Hello")
	}
	if segments[1].Start != 1500*time.Millisecond ||
		segments[1].End != 3*time.Second {
		t.Errorf("segment 1 timing mismatch: %+v", segments[1])
	}
}

func TestParseWhisperJSONInvalid(t *testing.T) {
	if _, _, err := parseWhisperJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseVerboseJSONFallsBackToFullText(t *testing.T) {
	raw := `{"text": "Whole transcript.", "segments": [], "duration": 12.5}`
	segments, _, err := parseVerboseJSON(raw, 0)
	if err != nil {
		t.Fatalf("parseVerboseJSON returned error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].End != 12500*time.Millisecond {
		t.Errorf("fallback segment end = %v, want 12.5s", segments[0].End)
	}
	if segments[0].Text != "Whole transcript." {
		t.Errorf("fallback segment text = %q", segments[0].Text)
	}
}

func TestParseVerboseJSONEmpty(t *testing.T) {
	if _, _, err := parseVerboseJSON("", 0); err == nil {
		t.Error("expected error for empty response")
	}
	if _, _, err := parseVerboseJSON(`{"text":"","segments":[]}`, 0); err == nil {
		t.Error("expected error for response without segments or text")
	}
}
