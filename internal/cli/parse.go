package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	syntacticparser "github.com/sonnert/SyntacticParser"
	"github.com/sonnert/SyntacticParser/internal/corpus"
)

func (c *CLI) newParseCommand() *cobra.Command {
	var modelPath string
	var format string
	var beam beamFlags

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Tag and parse sentences, one per line, from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Parse a text file, one sentence per line
  syntacticparser parse sentences.txt

  # Pipe a sentence
  echo "Dogs bark." | syntacticparser parse

  # JSON output with a wider beam
  syntacticparser parse sentences.txt --format json -b 8 --score-mode path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "conllu" && format != "json" {
				return fmt.Errorf("unknown format %q (want conllu or json)", format)
			}
			target := ""
			if len(args) == 1 {
				target = args[0]
			} else if isStdinTerminal() {
				return cmd.Help()
			}
			b, err := beam.beam()
			if err != nil {
				return err
			}

			data, _, err := fetch(target)
			if err != nil {
				return err
			}
			sentences, err := corpus.ReadText(bytes.NewReader(data))
			if err != nil {
				return err
			}

			start := time.Now()
			m, err := loadModel(modelPath, syntacticparser.WithBeam(b))
			if err != nil {
				return err
			}
			slog.Debug("Model loaded", "duration", time.Since(start))

			start = time.Now()
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			for _, words := range sentences {
				res, err := m.Parse(words)
				if err != nil {
					return err
				}
				if format == "json" {
					if err := enc.Encode(res); err != nil {
						return err
					}
					continue
				}
				s := corpus.Sentence{Words: res.Words, Tags: res.Tags, Heads: res.Heads}
				if err := corpus.Write(os.Stdout, s); err != nil {
					return err
				}
			}
			slog.Debug("Parsing completed", "sentences", len(sentences), "duration", time.Since(start))
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Path to model file (default: auto-detect)")
	cmd.Flags().StringVarP(&format, "format", "f", "conllu", "Output format: conllu or json")
	beam.register(cmd)
	return cmd
}
