package search

import (
	"errors"
	"hash/fnv"
	"reflect"
	"strings"
	"testing"

	"github.com/sonnert/SyntacticParser/transition"
)

var sentence = []string{"<ROOT>", "the", "old", "man", "the", "boats", "."}

func constant(score float64) Scorer {
	return ScorerFunc(func([]string, transition.Move) (float64, error) {
		return score, nil
	})
}

func perMove(scores map[transition.Move]float64) Scorer {
	return ScorerFunc(func(_ []string, m transition.Move) (float64, error) {
		return scores[m], nil
	})
}

// hashed scores every (features, move) pair differently but reproducibly.
func hashed() Scorer {
	return ScorerFunc(func(features []string, m transition.Move) (float64, error) {
		h := fnv.New32a()
		h.Write([]byte(strings.Join(features, "|") + m.String()))
		return float64(h.Sum32() % 97), nil
	})
}

func TestDecodeInvalidWidth(t *testing.T) {
	for _, w := range []int{0, -1} {
		b := &Beam{Width: w}
		if _, err := b.Decode(sentence, sentence, constant(0)); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("width %d: err = %v, want ErrInvalidWidth", w, err)
		}
	}
}

func TestDecodeConstantScorer(t *testing.T) {
	// With every score tied the first successor survives: SHIFT until the
	// buffer is empty, then LEFT-ARC down to ROOT.
	tests := []struct {
		n     int
		heads []int
	}{
		{2, []int{0, 0}},
		{3, []int{0, 2, 0}},
		{4, []int{0, 3, 3, 0}},
		{6, []int{0, 5, 5, 5, 5, 0}},
	}
	for _, tt := range tests {
		for _, w := range []int{1, 2, 5} {
			words := sentence[:tt.n]
			b := &Beam{Width: w}
			best, err := b.Decode(words, words, constant(0))
			if err != nil {
				t.Fatal(err)
			}
			if got := best.Config.Heads(); !reflect.DeepEqual(got, tt.heads) {
				t.Errorf("n=%d width %d: Heads = %v, want %v", tt.n, w, got, tt.heads)
			}
			if !best.Config.Terminal() {
				t.Errorf("n=%d width %d: best configuration is not terminal", tt.n, w)
			}
		}
	}
}

func TestDecodeTiesKeepFirstMove(t *testing.T) {
	words := []string{"<ROOT>", "a", "b", "c"}
	tests := []struct {
		name   string
		scores map[transition.Move]float64
		width  int
		heads  []int
	}{
		{"shift ties right-arc", map[transition.Move]float64{transition.Shift: 1, transition.RightArc: 1}, 1, []int{0, 0, 1, 2}},
		{"shift ties left-arc", map[transition.Move]float64{transition.Shift: 1, transition.LeftArc: 1}, 1, []int{0, 3, 3, 0}},
		{"left-arc ties right-arc", map[transition.Move]float64{transition.LeftArc: 1, transition.RightArc: 1}, 2, []int{0, 2, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []ScoreMode{StepScore, PathScore} {
				b := &Beam{Width: tt.width, Mode: mode}
				best, err := b.Decode(words, words, perMove(tt.scores))
				if err != nil {
					t.Fatal(err)
				}
				if got := best.Config.Heads(); !reflect.DeepEqual(got, tt.heads) {
					t.Errorf("%s: Heads = %v, want %v", mode, got, tt.heads)
				}
			}
		})
	}
}

func TestDecodeScoreModes(t *testing.T) {
	words := sentence[:3]
	scorer := perMove(map[transition.Move]float64{
		transition.LeftArc:  1,
		transition.RightArc: 2,
		transition.Shift:    3,
	})
	tests := []struct {
		mode  ScoreMode
		score float64
	}{
		{StepScore, 2},
		{PathScore, 13},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			b := &Beam{Width: 1, Mode: tt.mode}
			best, err := b.Decode(words, words, scorer)
			if err != nil {
				t.Fatal(err)
			}
			if best.Score != tt.score {
				t.Errorf("Score = %v, want %v", best.Score, tt.score)
			}
			if got := best.Config.Heads(); !reflect.DeepEqual(got, []int{0, 0, 1}) {
				t.Errorf("Heads = %v, want [0 0 1]", got)
			}
		})
	}
}

func TestDecodeCompleteTree(t *testing.T) {
	for _, w := range []int{1, 3, 8} {
		b := &Beam{Width: w, Mode: PathScore}
		best, err := b.Decode(sentence, sentence, hashed())
		if err != nil {
			t.Fatal(err)
		}
		if got := best.Config.Stack(); !reflect.DeepEqual(got, []int{0}) {
			t.Errorf("width %d: final stack %v", w, got)
		}
		heads := best.Config.Heads()
		for d := 1; d < len(heads); d++ {
			h, steps := d, 0
			for h != 0 && steps < len(heads) {
				h, steps = heads[h], steps+1
			}
			if h != 0 {
				t.Errorf("width %d: token %d does not reach ROOT in %v", w, d, heads)
			}
		}
	}
}

func TestDecodeConcurrencyIsDeterministic(t *testing.T) {
	for _, mode := range []ScoreMode{StepScore, PathScore} {
		want, err := (&Beam{Width: 4, Mode: mode}).Decode(sentence, sentence, hashed())
		if err != nil {
			t.Fatal(err)
		}
		for range 5 {
			got, err := (&Beam{Width: 4, Mode: mode, Concurrency: 3}).Decode(sentence, sentence, hashed())
			if err != nil {
				t.Fatal(err)
			}
			if got.Score != want.Score || !reflect.DeepEqual(got.Config.Heads(), want.Config.Heads()) {
				t.Fatalf("%s: concurrent decode = %v %v, sequential = %v %v",
					mode, got.Score, got.Config.Heads(), want.Score, want.Config.Heads())
			}
		}
	}
}

func TestDecodeScorerError(t *testing.T) {
	boom := errors.New("boom")
	scorer := ScorerFunc(func([]string, transition.Move) (float64, error) {
		return 0, boom
	})
	for _, c := range []int{0, 2} {
		b := &Beam{Width: 2, Concurrency: c}
		if _, err := b.Decode(sentence, sentence, scorer); !errors.Is(err, boom) {
			t.Errorf("concurrency %d: err = %v, want boom", c, err)
		}
	}
}

func TestParseScoreMode(t *testing.T) {
	for _, m := range []ScoreMode{StepScore, PathScore} {
		got, err := ParseScoreMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseScoreMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseScoreMode("sum"); err == nil {
		t.Error("ParseScoreMode(sum) should fail")
	}
}
