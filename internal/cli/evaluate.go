package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	syntacticparser "github.com/sonnert/SyntacticParser"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var modelPath string
	var configPath string
	var cvFolds int
	var beam beamFlags

	cmd := &cobra.Command{
		Use:   "evaluate <treebank.conllu>",
		Short: "Measure tagging accuracy and attachment score on a treebank",
		Args:  cobra.ExactArgs(1),
		Example: `  syntacticparser evaluate data/en_ewt-ud-test.conllu --model model.json
  syntacticparser evaluate data/en_ewt-ud-test.conllu -b 8 --score-mode path
  syntacticparser evaluate data/en_ewt-ud-train.conllu --cv 10 --config train.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := beam.beam()
			if err != nil {
				return err
			}

			start := time.Now()
			var result *syntacticparser.EvalResult
			if cvFolds > 0 {
				config := syntacticparser.DefaultTrainConfig()
				if configPath != "" {
					if config, err = syntacticparser.LoadTrainConfig(configPath); err != nil {
						return err
					}
				}
				config.BeamWidth, config.ScoreMode, config.Concurrency = b.Width, b.Mode.String(), b.Concurrency
				slog.Info("Cross-validating", "folds", cvFolds, "treebank", args[0])
				result, err = syntacticparser.CrossValidate(args[0], config, &syntacticparser.EvalConfig{Folds: cvFolds})
			} else {
				m, loadErr := loadModel(modelPath, syntacticparser.WithBeam(b))
				if loadErr != nil {
					return loadErr
				}
				slog.Info("Evaluating", "treebank", args[0], "beam-width", b.Width, "score-mode", b.Mode)
				result, err = syntacticparser.Evaluate(m, args[0], nil)
			}
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			fmt.Printf("Sentences: %d\n", result.Sentences)
			fmt.Printf("Tagging accuracy: %.2f%% (%d/%d)\n",
				result.TagAccuracy*100, result.TagCorrect, result.TagTotal)
			fmt.Printf("Unlabelled attachment score: %.2f%% (%d/%d)\n",
				result.UAS*100, result.HeadCorrect, result.HeadTotal)
			fmt.Printf("Per-sentence UAS: %.2f%% ± %.2f%%\n",
				result.SentenceUASMean*100, result.SentenceUASStdDev*100)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Path to model file (default: auto-detect)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML training configuration for --cv")
	cmd.Flags().IntVar(&cvFolds, "cv", 0, "Cross-validate with this many folds instead of evaluating a model")
	beam.register(cmd)
	return cmd
}
