package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/BIBIYES/VideoTranslate/internal/ffmpeg"
)

// Options controls the audio produced for speech recognition.
type Options struct {
	SampleRate int // Sample rate in Hz
	Channels   int // Number of channels (1=mono, 2=stereo)
}

// DefaultOptions returns the extraction settings speech recognition
// expects: mono 16 kHz WAV.
func DefaultOptions() Options {
	return Options{
		SampleRate: 16000,
		Channels:   1,
	}
}

// Extract converts the audio track of a media file into a PCM WAV file at
// outputPath, dropping any video stream.
func Extract(
	ctx context.Context,
	inputPath, outputPath string,
	opts Options,
) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	kwargs := ffmpeg.KwArgs{
		"vn":     "", // No video
		"ac":     opts.Channels,
		"ar":     opts.SampleRate,
		"acodec": "pcm_s16le",
		"y":      "", // Overwrite output
	}

	err = ffmpeg.Input(inputPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg extraction failed: %w", err)
	}

	return nil
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration reports the length of an audio or video file via ffprobe.
func Duration(filePath string) (time.Duration, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", filePath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var seconds float64
	if _, err := fmt.Sscanf(probe.Format.Duration, "%f", &seconds); err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// IsVideoFile checks if the file is a video based on extension.
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".wmv":  true,
		".flv":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
	}
	return videoExts[ext]
}

// IsAudioFile checks if the file is an audio file based on extension.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3":  true,
		".wav":  true,
		".aac":  true,
		".flac": true,
		".ogg":  true,
		".m4a":  true,
	}
	return audioExts[ext]
}

// IsMediaFile checks if the file is either audio or video.
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}
