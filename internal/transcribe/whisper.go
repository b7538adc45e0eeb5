package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BIBIYES/VideoTranslate/internal/audio"
	"github.com/BIBIYES/VideoTranslate/internal/subtitle"
)

// WhisperTranscriber runs a local faster-whisper CLI as a subprocess and
// reads back its JSON output.
type WhisperTranscriber struct {
	options Options
}

// ProcessError reports a recognition subprocess that exited non-zero,
// carrying its captured diagnostic output.
type ProcessError struct {
	Command string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf(
		"%s failed: %v\nSTDOUT:\n%s\nSTDERR:\n%s",
		e.Command, e.Err, e.Stdout, e.Stderr,
	)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func NewWhisperTranscriber(opts Options) *WhisperTranscriber {
	if opts.Model == "" {
		opts.Model = "base"
	}
	if opts.Device == "" {
		opts.Device = "auto"
	}
	if opts.ComputeType == "" {
		opts.ComputeType = "int8_float16"
	}
	return &WhisperTranscriber{options: opts}
}

// whisperJSON is the JSON document the whisper CLI writes next to the audio.
type whisperJSON struct {
	Text     string       `json:"text"`
	Segments []rawSegment `json:"segments"`
	Language string       `json:"language"`
}

func (t *WhisperTranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	binary, err := whisperBinary()
	if err != nil {
		return nil, err
	}

	outputDir, err := os.MkdirTemp("", "videotranslate-whisper-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	defer os.RemoveAll(outputDir)

	args := []string{
		audioPath,
		"--model", t.options.Model,
		"--device", t.options.Device,
		"--compute_type", t.options.ComputeType,
		"--output_format", "json",
		"--output_dir", outputDir,
	}
	if t.options.Language != "" {
		args = append(args, "--language", t.options.Language)
	}
	if t.options.VADFilter {
		args = append(args, "--vad_filter", "True")
	} else {
		args = append(args, "--vad_filter", "False")
	}

	cmd := exec.CommandContext(ctx, binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ProcessError{
			Command: filepath.Base(binary),
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	base := strings.TrimSuffix(
		filepath.Base(audioPath),
		filepath.Ext(audioPath),
	)
	jsonPath := filepath.Join(outputDir, base+".json")

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("whisper output not found: %w", err)
	}

	segments, language, err := parseWhisperJSON(data)
	if err != nil {
		return nil, err
	}

	if language == "" {
		language = t.options.Language
	}

	duration, _ := audio.Duration(audioPath)

	return &Result{
		Segments: segments,
		Language: language,
		Duration: duration,
	}, nil
}

func parseWhisperJSON(data []byte) ([]subtitle.Segment, string, error) {
	var doc whisperJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("failed to parse whisper output: %w", err)
	}
	return numberSegments(doc.Segments), doc.Language, nil
}

// whisperBinary locates the faster-whisper CLI. The environment override
// wins; otherwise common binary names are searched on PATH.
func whisperBinary() (string, error) {
	if path := os.Getenv("VIDEOTRANSLATE_WHISPER_PATH"); path != "" {
		return path, nil
	}
	for _, name := range []string{"whisper-ctranslate2", "whisper"} {
		if found, err := exec.LookPath(name); err == nil {
			return found, nil
		}
	}
	return "", fmt.Errorf(
		"whisper CLI not found: install whisper-ctranslate2 or set VIDEOTRANSLATE_WHISPER_PATH",
	)
}
