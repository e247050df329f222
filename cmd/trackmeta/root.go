package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beatlab/trackmeta/analysis"
	"github.com/beatlab/trackmeta/config"
	"github.com/beatlab/trackmeta/filename"
	"github.com/beatlab/trackmeta/logging"
	"github.com/beatlab/trackmeta/theory"
	"github.com/beatlab/trackmeta/transcode"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "trackmeta",
		Short:        "Infer tempo and key metadata for audio tracks",
		SilenceUsage: true,
	}

	root.AddCommand(cmdAnalyze(), cmdKeys())
	return root
}

func cmdAnalyze() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file>",
		Short: "Infer BPM and key from a file's audio and name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			applyLogLevel(cfg.LogLevel)

			analyzer := analysis.NewAnalyzer(cfg.AnalysisConfig())
			meta := analyzer.AnalyzeFile(decoderFor(args[0], cfg), args[0])

			return printJSON(cmd, meta)
		},
	}
}

func cmdKeys() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <key>",
		Short: "List keys that mix harmonically with the given key (e.g. \"Fmin\", \"C#\", \"A major\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			key := filename.ParseKeyToken(args[0])
			if key == nil {
				return fmt.Errorf("unrecognized key: %q", args[0])
			}

			compatible := theory.CompatibleKeys(*key)
			if cfg.Keys.Extended {
				compatible = theory.CompatibleKeysExtended(*key)
			}

			names := make([]string, len(compatible))
			for i, k := range compatible {
				names[i] = k.String()
			}

			return printJSON(cmd, map[string]any{
				"key":        key.String(),
				"compatible": names,
			})
		},
	}
}

// decoderFor picks the pure-Go WAV path for .wav uploads and ffmpeg for
// everything else.
func decoderFor(path string, cfg *config.Config) transcode.Decoder {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return transcode.NewWAVDecoder()
	}
	return transcode.NewFFmpegDecoder(cfg.FFmpegConfig())
}

func applyLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logging.GetGlobalLogger().SetLevel(logging.DebugLevel)
	case "warn":
		logging.GetGlobalLogger().SetLevel(logging.WarnLevel)
	case "error":
		logging.GetGlobalLogger().SetLevel(logging.ErrorLevel)
	default:
		logging.GetGlobalLogger().SetLevel(logging.InfoLevel)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
