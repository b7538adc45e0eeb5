package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/BIBIYES/VideoTranslate/internal/subtitle"
	"github.com/BIBIYES/VideoTranslate/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [srt_file]",
	Short: "Translate an SRT subtitle file using an LLM API",
	Long: `Translate an existing SRT subtitle file into another language.

Subtitle lines are sent to the model in small batches. If a batch fails,
already-translated batches keep their translations and the remaining
segments fall back to the original text in the written document.

The openai provider accepts any OpenAI-compatible endpoint via --api-base.

Examples:
  videotranslate translate video.srt --target-language 中文
  videotranslate translate video.srt -t english --model gpt-4o-mini
  videotranslate translate video.srt -t japanese --provider anthropic
  videotranslate translate video.srt -t spanish --api-base https://my-proxy.example.com/v1`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		String("provider", "openai", "Translation provider (openai, anthropic, gemini)")
	translateCmd.Flags().
		String("api-base", "", "Custom API base URL for OpenAI-compatible endpoints")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set the provider's environment variable)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific default)")
	translateCmd.Flags().
		Int("batch-size", translate.DefaultBatchSize, "Number of subtitle lines per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	srtPath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	providerStr, _ := cmd.Flags().GetString("provider")
	apiBase, _ := cmd.Flags().GetString("api-base")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(srtPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", srtPath)
	}
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	provider := translate.Provider(providerStr)
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnvVar(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnvVar(provider),
		)
	}

	if outputPath == "" {
		base := strings.TrimSuffix(srtPath, filepath.Ext(srtPath))
		outputPath = fmt.Sprintf("%s_%s.srt", base, targetLang)
	}

	data, err := os.ReadFile(srtPath)
	if err != nil {
		return fmt.Errorf("failed to read subtitle file: %w", err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("subtitle file is not valid UTF-8: %s", srtPath)
	}

	segments, skipped := subtitle.DecodeSRT(string(data))
	if skipped > 0 {
		logger.Warnw("Skipped malformed subtitle blocks", "count", skipped)
	}
	if len(segments) == 0 {
		return fmt.Errorf("no subtitle segments parsed from %s", srtPath)
	}

	logger.Infow("Starting subtitle translation",
		"input", srtPath,
		"output", outputPath,
		"target_language", targetLang,
		"segments", len(segments),
		"batch_size", batchSize,
	)

	translator, err := translate.Factory(ctx, provider, translate.Options{
		TargetLanguage: targetLang,
		Model:          model,
		APIBase:        apiBase,
		APIKey:         apiKey,
		BatchSize:      batchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	items := translate.ItemsFromSegments(segments)
	replies, translateErr := translator.Translate(ctx, items)

	merged := translate.Merge(segments, replies)

	if translateErr != nil {
		// Keep what already succeeded: completed batches stay translated,
		// the rest of the document falls back to the original text.
		logger.Warnw("Translation incomplete, writing partial result",
			"translated", len(replies),
			"total", len(items),
		)
		content := subtitle.EncodeSRT(merged)
		if writeErr := os.WriteFile(
			outputPath,
			[]byte(content),
			0644,
		); writeErr != nil {
			return fmt.Errorf("failed to write output file: %w", writeErr)
		}
		return fmt.Errorf("translation failed: %w", translateErr)
	}

	logger.Infow("Translation complete", "segments", len(replies))

	content := subtitle.EncodeSRT(merged)
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Println(absOutput)

	return nil
}

func apiKeyEnvVar(provider translate.Provider) string {
	switch provider {
	case translate.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case translate.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case translate.ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "API_KEY"
	}
}
