package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"harmonize/internal/config"
)

// version is overridable at build time via -ldflags "-X main.version=...".
var version = "0.1.0"

func newRootCommand() *cobra.Command {
	var (
		codecFlag       string
		concurrencyFlag int
		excludeFlag     []string
		configFlag      string
		quietFlag       bool
		verboseFlag     bool
		dryRunFlag      bool
	)

	rootCmd := &cobra.Command{
		Use:   "harmonize [flags] SOURCE TARGET [-- ENCODER_OPTIONS...]",
		Short: "Mirror a lossless music library into a lossy one",
		Long: `harmonize mirrors the SOURCE directory tree into TARGET, transcoding
FLAC files to the configured codec and copying everything else verbatim.
Files whose target already matches the source modification time are
skipped, and files in TARGET with no counterpart in SOURCE are deleted.

Arguments after "--" are passed to the encoder in place of its defaults.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			positional := args
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				positional = args[:dash]
			}
			if len(positional) != 2 {
				return fmt.Errorf("expected SOURCE and TARGET, got %d arguments", len(positional))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			encoderOptions := []string(nil)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				encoderOptions = args[dash:]
				args = args[:dash]
			}

			settings, err := loadSettings(configFlag)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("codec") {
				settings.Codec = codecFlag
			}
			if cmd.Flags().Changed("concurrency") {
				settings.Concurrency = concurrencyFlag
			}
			if quietFlag {
				settings.Quiet = true
			}
			settings.Exclude = append(settings.Exclude, excludeFlag...)
			if len(encoderOptions) > 0 {
				settings.EncoderOptions = encoderOptions
			}
			settings.SourceDir = args[0]
			settings.TargetDir = args[1]

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, settings, verboseFlag, dryRunFlag)
		},
	}

	rootCmd.Flags().StringVar(&codecFlag, "codec", "", "Output codec for FLAC sources (mp3 or opus)")
	rootCmd.Flags().IntVarP(&concurrencyFlag, "concurrency", "n", 0, "Maximum simultaneous conversions (0 means all CPUs)")
	rootCmd.Flags().StringArrayVar(&excludeFlag, "exclude", nil, "Glob pattern of source-relative paths to skip (repeatable)")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "Configuration file path")
	rootCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Only report warnings and errors")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Also report skipped files")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Scan and report what would be done without writing")

	return rootCmd
}

func loadSettings(path string) (*config.Settings, error) {
	if path != "" {
		return config.Load(path)
	}
	path, err := config.DefaultPath()
	if err != nil {
		// No resolvable config dir on this system; defaults are fine.
		return config.DefaultSettings(), nil
	}
	return config.Load(path)
}
