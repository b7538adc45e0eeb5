package video

import (
	"context"
	"fmt"
	"os"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/BIBIYES/VideoTranslate/internal/ffmpeg"
)

// BurnOptions controls subtitle rendering during burn-in.
type BurnOptions struct {
	FontSize   int    // Used when ForceStyle is empty
	ForceStyle string // Raw libass force_style string, e.g. "FontName=Arial"
	FontsDir   string // Optional directory with additional fonts
}

// DefaultBurnOptions returns the default burn-in style.
func DefaultBurnOptions() BurnOptions {
	return BurnOptions{FontSize: 28}
}

// BurnSubtitles renders an SRT file into the video frames of videoPath and
// writes the result to outputPath. Subtitles become part of the picture, not
// a selectable track.
func BurnSubtitles(
	ctx context.Context,
	videoPath, subtitlePath, outputPath string,
	opts BurnOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	err = ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"vf": SubtitlesFilter(subtitlePath, opts),
			"y":  "",
		}).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg burn-in failed: %w", err)
	}

	return nil
}

// SubtitlesFilter builds the ffmpeg subtitles video-filter expression.
func SubtitlesFilter(subtitlePath string, opts BurnOptions) string {
	parts := []string{
		fmt.Sprintf("subtitles='%s'", escapeFilterPath(subtitlePath)),
	}
	if opts.FontsDir != "" {
		parts = append(parts,
			fmt.Sprintf("fontsdir='%s'", escapeFilterPath(opts.FontsDir)))
	}

	style := opts.ForceStyle
	if style == "" && opts.FontSize > 0 {
		style = fmt.Sprintf("Fontsize=%d", opts.FontSize)
	}
	if style != "" {
		parts = append(parts, fmt.Sprintf("force_style='%s'", style))
	}

	return strings.Join(parts, ":")
}

// escapeFilterPath escapes a path for use inside an ffmpeg filter argument.
// Backslashes, colons and single quotes all carry meaning there.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, `:`, `\:`)
	path = strings.ReplaceAll(path, `'`, `\'`)
	return path
}
