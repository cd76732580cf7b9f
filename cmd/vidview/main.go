package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vidview",
	Short: "vidview - embeddable video player widget toolkit",
	Long:  "Inspect video sources and preview the vidview player widget headlessly over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogging(verbose)

		cfg, err := loadConfig(cfgFile)
		if err != nil {
			return err
		}
		cmd.SetContext(withConfig(cmd.Context(), cfg))

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./vidview.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(playCmd)
}

// initLogging configures the global console logger.
func initLogging(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}
