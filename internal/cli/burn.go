package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BIBIYES/VideoTranslate/internal/video"
)

var burnCmd = &cobra.Command{
	Use:   "burn [video_file] [srt_file]",
	Short: "Burn SRT subtitles into a video",
	Long: `Render an SRT subtitle file permanently into the video frames.

The default style only sets the font size; pass --force-style for full
libass styling.

Examples:
  videotranslate burn video.mp4 video.srt
  videotranslate burn video.mp4 video.srt --font-size 32
  videotranslate burn video.mp4 video.srt --force-style "FontName=Arial,PrimaryColour=&HFFFFFF&"`,
	Args: cobra.ExactArgs(2),
	RunE: runBurn,
}

func init() {
	rootCmd.AddCommand(burnCmd)

	burnCmd.Flags().
		Int("font-size", 28, "Subtitle font size for the default style")
	burnCmd.Flags().
		String("force-style", "", "Raw libass force_style string (overrides --font-size)")
}

func runBurn(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	srtPath := args[1]
	ctx := context.Background()

	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", videoPath)
	}
	if _, err := os.Stat(srtPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", srtPath)
	}

	fontSize, _ := cmd.Flags().GetInt("font-size")
	forceStyle, _ := cmd.Flags().GetString("force-style")
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath == "" {
		ext := filepath.Ext(videoPath)
		outputPath = strings.TrimSuffix(videoPath, ext) + "_sub" + ext
	}

	logger.Infow("Burning subtitles",
		"video", videoPath,
		"subtitles", srtPath,
		"output", outputPath,
	)

	opts := video.BurnOptions{
		FontSize:   fontSize,
		ForceStyle: forceStyle,
	}

	if err := video.BurnSubtitles(
		ctx,
		videoPath,
		srtPath,
		outputPath,
		opts,
	); err != nil {
		return fmt.Errorf("burn-in failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Println(absOutput)

	return nil
}
