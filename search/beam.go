// Package search implements beam decoding over arc-standard configurations.
package search

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sonnert/SyntacticParser/transition"
)

var (
	// ErrInvalidWidth is returned for a beam width below 1.
	ErrInvalidWidth = errors.New("beam width must be at least 1")
	// ErrNoTermination is returned when decoding runs past the 2n-1
	// transitions any arc-standard derivation needs.
	ErrNoTermination = errors.New("decoding did not terminate")
)

// Scorer scores a single move given the features of the configuration it is
// applied in.
type Scorer interface {
	Score(features []string, m transition.Move) (float64, error)
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(features []string, m transition.Move) (float64, error)

// Score calls f.
func (f ScorerFunc) Score(features []string, m transition.Move) (float64, error) {
	return f(features, m)
}

// ScoreMode selects how a hypothesis score is derived from move scores.
type ScoreMode int

const (
	// StepScore ranks a hypothesis by the score of its last move only.
	StepScore ScoreMode = iota
	// PathScore ranks a hypothesis by the sum of all its move scores.
	PathScore
)

// String returns the mode name.
func (m ScoreMode) String() string {
	switch m {
	case StepScore:
		return "step"
	case PathScore:
		return "path"
	}
	return fmt.Sprintf("ScoreMode(%d)", int(m))
}

// ParseScoreMode parses "step" or "path".
func ParseScoreMode(s string) (ScoreMode, error) {
	switch s {
	case "step", "":
		return StepScore, nil
	case "path":
		return PathScore, nil
	}
	return 0, fmt.Errorf("unknown score mode %q", s)
}

// Hypothesis is one beam entry.
type Hypothesis struct {
	Config transition.Configuration
	Score  float64
	Moves  []transition.Move
}

// Beam keeps at most Width hypotheses per round.
type Beam struct {
	Width int
	Mode  ScoreMode
	// Concurrency > 1 expands the hypotheses of a round in parallel, at most
	// Concurrency at a time. Selection still happens in a fixed order once all
	// expansions of the round are done, so results do not depend on it.
	Concurrency int
}

// Decode searches for the best complete configuration of the sentence. Every
// legal move of every hypothesis is scored on its own, successors compete for
// Width slots (a full beam replaces its first lowest entry only on a strictly
// higher score), and the round's survivors form the next beam. Search ends
// when no hypothesis has a legal move; the first highest scoring one wins.
func (b *Beam) Decode(words, tags []string, scorer Scorer) (Hypothesis, error) {
	if b.Width < 1 {
		return Hypothesis{}, fmt.Errorf("%w: got %d", ErrInvalidWidth, b.Width)
	}
	start := transition.Initial(len(words))
	beam := []Hypothesis{{Config: start, Moves: start.ValidMoves()}}

	maxRounds := 2 * len(words)
	for round := 0; expandable(beam); round++ {
		if round >= maxRounds {
			return Hypothesis{}, fmt.Errorf("%w after %d rounds", ErrNoTermination, round)
		}
		successors, err := b.expand(words, tags, beam, scorer)
		if err != nil {
			return Hypothesis{}, err
		}
		beam = b.keep(successors)
	}
	return best(beam), nil
}

func expandable(beam []Hypothesis) bool {
	for _, h := range beam {
		if len(h.Moves) > 0 {
			return true
		}
	}
	return false
}

func (b *Beam) expand(words, tags []string, beam []Hypothesis, scorer Scorer) ([][]Hypothesis, error) {
	out := make([][]Hypothesis, len(beam))
	if b.Concurrency <= 1 {
		for i, h := range beam {
			s, err := b.successors(words, tags, h, scorer)
			if err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(b.Concurrency)
	for i, h := range beam {
		g.Go(func() error {
			s, err := b.successors(words, tags, h, scorer)
			out[i] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Beam) successors(words, tags []string, h Hypothesis, scorer Scorer) ([]Hypothesis, error) {
	features := transition.Features(words, tags, h.Config)
	out := make([]Hypothesis, 0, len(h.Moves))
	for _, m := range h.Moves {
		score, err := scorer.Score(features, m)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", m, err)
		}
		if b.Mode == PathScore {
			score += h.Score
		}
		next, err := h.Config.Apply(m)
		if err != nil {
			return nil, err
		}
		out = append(out, Hypothesis{Config: next, Score: score, Moves: next.ValidMoves()})
	}
	return out, nil
}

// keep selects the round's survivors, visiting successors by hypothesis, then
// move order.
func (b *Beam) keep(successors [][]Hypothesis) []Hypothesis {
	kept := make([]Hypothesis, 0, b.Width)
	for _, group := range successors {
		for _, h := range group {
			if len(kept) < b.Width {
				kept = append(kept, h)
				continue
			}
			low := 0
			for j := 1; j < len(kept); j++ {
				if kept[j].Score < kept[low].Score {
					low = j
				}
			}
			if h.Score > kept[low].Score {
				kept[low] = h
			}
		}
	}
	return kept
}

func best(beam []Hypothesis) Hypothesis {
	top := 0
	for j := 1; j < len(beam); j++ {
		if beam[j].Score > beam[top].Score {
			top = j
		}
	}
	return beam[top]
}
