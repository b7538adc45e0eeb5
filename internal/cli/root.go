package cli

import (
	"github.com/BIBIYES/VideoTranslate/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "videotranslate",
	Short: "Video subtitle toolbox: transcribe, burn in, and translate",
	Long: `VideoTranslate turns video or audio into SRT subtitles with a local
speech-recognition model, burns subtitles back into video with ffmpeg,
and machine-translates subtitle files through an LLM API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
