package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// BinaryPaths holds resolved locations of the ffmpeg tools.
type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure resolves the ffmpeg and ffprobe binaries once per process.
// Environment overrides win; otherwise PATH is searched.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = resolve()
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func resolve() (BinaryPaths, error) {
	ffmpegPath := os.Getenv("VIDEOTRANSLATE_FFMPEG_PATH")
	ffprobePath := os.Getenv("VIDEOTRANSLATE_FFPROBE_PATH")

	if ffmpegPath == "" {
		found, err := exec.LookPath("ffmpeg")
		if err != nil {
			return BinaryPaths{}, fmt.Errorf(
				"ffmpeg not found: install it or set VIDEOTRANSLATE_FFMPEG_PATH",
			)
		}
		ffmpegPath = found
	}
	if ffprobePath == "" {
		found, err := exec.LookPath("ffprobe")
		if err != nil {
			return BinaryPaths{}, fmt.Errorf(
				"ffprobe not found: install it or set VIDEOTRANSLATE_FFPROBE_PATH",
			)
		}
		ffprobePath = found
	}

	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}
