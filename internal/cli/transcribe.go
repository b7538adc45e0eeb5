package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BIBIYES/VideoTranslate/internal/audio"
	"github.com/BIBIYES/VideoTranslate/internal/subtitle"
	"github.com/BIBIYES/VideoTranslate/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [media_file]",
	Short: "Generate SRT subtitles for a video or audio file",
	Long: `Generate SRT subtitles for the specified video or audio file.

For video files the audio track is extracted first (mono 16 kHz WAV), then
handed to the speech-recognition model. The default provider runs a local
faster-whisper CLI; the openai provider uses the Whisper API instead.

Examples:
  videotranslate transcribe video.mp4
  videotranslate transcribe video.mp4 --model-size medium --language zh
  videotranslate transcribe talk.mp4 -l en --device cpu --compute-type float32
  videotranslate transcribe podcast.mp3 --provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().
		String("model-size", "base", "Model size, name or local path")
	transcribeCmd.Flags().
		StringP("language", "l", "zh", "Language code for decoding; empty for auto-detect")
	transcribeCmd.Flags().
		String("device", "auto", "Inference device (auto, cpu, cuda)")
	transcribeCmd.Flags().
		String("compute-type", "int8_float16", "Numeric precision for inference")
	transcribeCmd.Flags().
		Bool("no-vad", false, "Disable the voice-activity filter")
	transcribeCmd.Flags().
		String("provider", "whisper", "Transcription provider (whisper, openai)")
	transcribeCmd.Flags().
		StringP("api-key", "k", "", "API key for the openai provider (or set OPENAI_API_KEY)")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected audio or video file)",
			filepath.Ext(mediaPath),
		)
	}

	modelSize, _ := cmd.Flags().GetString("model-size")
	language, _ := cmd.Flags().GetString("language")
	device, _ := cmd.Flags().GetString("device")
	computeType, _ := cmd.Flags().GetString("compute-type")
	noVAD, _ := cmd.Flags().GetBool("no-vad")
	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	outputPath, _ := cmd.Flags().GetString("output")

	provider := transcribe.Provider(providerStr)
	if provider == transcribe.ProviderOpenAI && apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(
			mediaPath,
			filepath.Ext(mediaPath),
		) + ".srt"
	}

	logger.Infow("Starting transcription",
		"input", mediaPath,
		"output", outputPath,
		"model", modelSize,
		"language", language,
		"provider", providerStr,
	)

	tempDir, err := os.MkdirTemp("", "videotranslate-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	audioPath := filepath.Join(tempDir, "audio.wav")

	logger.Infow("Extracting audio")
	if err := audio.Extract(
		ctx,
		mediaPath,
		audioPath,
		audio.DefaultOptions(),
	); err != nil {
		return fmt.Errorf("failed to extract audio: %w", err)
	}

	transcriber, err := transcribe.Factory(provider, transcribe.Options{
		Model:       modelSize,
		Language:    language,
		Device:      device,
		ComputeType: computeType,
		VADFilter:   !noVAD,
		APIKey:      apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Running speech recognition")
	result, err := transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	logger.Infow("Transcription complete",
		"segments", len(result.Segments),
		"duration", result.Duration.String(),
	)

	content := subtitle.EncodeSRT(result.Segments)
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Println(absOutput)

	return nil
}
