package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"

	syntacticparser "github.com/sonnert/SyntacticParser"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var output string
	var configPath string
	var epochs int
	var limit int
	var dropNonProjective bool

	cmd := &cobra.Command{
		Use:   "train <treebank.conllu>",
		Short: "Train a tagger and parser on a CoNLL-U treebank",
		Args:  cobra.ExactArgs(1),
		Example: `  syntacticparser train data/en_ewt-ud-train.conllu
  syntacticparser train data/en_ewt-ud-train.conllu --epochs 5 -o model.json
  syntacticparser train data/en_ewt-ud-train.conllu --config train.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := syntacticparser.DefaultTrainConfig()
			if configPath != "" {
				loaded, err := syntacticparser.LoadTrainConfig(configPath)
				if err != nil {
					return err
				}
				config = loaded
			}
			if cmd.Flags().Changed("epochs") {
				config.Epochs = epochs
			}
			if cmd.Flags().Changed("limit") {
				config.Limit = limit
			}
			if cmd.Flags().Changed("drop-non-projective") {
				config.DropNonProjective = dropNonProjective
			}

			var bar *progressbar.ProgressBar
			if !c.silent {
				config.Progress = func(done, total int) {
					if bar == nil {
						bar = progressbar.NewOptions(total,
							progressbar.OptionSetWriter(os.Stderr),
							progressbar.OptionSetDescription("Training"))
					}
					_ = bar.Add(1)
				}
			}

			slog.Info("Training parser", "treebank", args[0], "epochs", config.Epochs, "output", output)
			start := time.Now()
			m, err := syntacticparser.Train(args[0], config)
			if bar != nil {
				_ = bar.Finish()
				fmt.Fprintln(os.Stderr)
			}
			if err != nil {
				return err
			}
			slog.Debug("Training completed", "duration", time.Since(start))

			if err := m.Save(output); err != nil {
				return err
			}
			if fi, err := os.Stat(output); err == nil {
				slog.Info("Model saved", "path", output, "size", humanize.Bytes(uint64(fi.Size())))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", syntacticparser.ModelName, "Path of the model file to write")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML training configuration")
	cmd.Flags().IntVar(&epochs, "epochs", 1, "Passes over the treebank")
	cmd.Flags().IntVar(&limit, "limit", 0, "Train on at most this many sentences (0 = all)")
	cmd.Flags().BoolVar(&dropNonProjective, "drop-non-projective", false, "Skip sentences with crossing arcs")
	return cmd
}
