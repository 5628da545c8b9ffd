package cli

import (
	"github.com/spf13/cobra"

	"github.com/sonnert/SyntacticParser/search"
)

// beamFlags are the decoding flags shared by parse, headlines and evaluate.
type beamFlags struct {
	width       int
	mode        string
	concurrency int
}

func (f *beamFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.width, "beam-width", "b", 1, "Beam width (1 is greedy decoding)")
	cmd.Flags().StringVar(&f.mode, "score-mode", search.StepScore.String(), "Hypothesis ranking: step (last move score) or path (summed move scores)")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 1, "Hypotheses expanded in parallel per beam round")
}

func (f *beamFlags) beam() (search.Beam, error) {
	mode, err := search.ParseScoreMode(f.mode)
	if err != nil {
		return search.Beam{}, err
	}
	if f.width < 1 {
		return search.Beam{}, search.ErrInvalidWidth
	}
	return search.Beam{Width: f.width, Mode: mode, Concurrency: f.concurrency}, nil
}
