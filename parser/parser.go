// Package parser implements a transition-based dependency parser. A sentence is
// first tagged for parts of speech; an averaged perceptron over configuration
// features then picks arc-standard moves, trained from the oracle and decoded
// with a beam.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/sonnert/SyntacticParser/perceptron"
	"github.com/sonnert/SyntacticParser/search"
	"github.com/sonnert/SyntacticParser/tagger"
	"github.com/sonnert/SyntacticParser/transition"
)

var (
	// ErrLengthMismatch is returned when words, tags and heads of a training
	// sentence differ in length.
	ErrLengthMismatch = errors.New("words, tags and heads differ in length")
	// ErrInvalidHead is returned for a head index outside the sentence, a
	// token heading itself, or ROOT with a head.
	ErrInvalidHead = errors.New("invalid head")
	// ErrMissingRoot is returned when a training sentence does not start
	// with the ROOT token.
	ErrMissingRoot = errors.New("sentence does not start with ROOT")
)

// Result is a tagged and parsed sentence. All slices are ROOT-prefixed:
// index 0 is the ROOT token, whose head is 0.
type Result struct {
	Words []string `json:"words"`
	Tags  []string `json:"tags"`
	Heads []int    `json:"heads"`
}

// Parser is a part-of-speech tagger plus a move classifier.
type Parser struct {
	tagger *tagger.Tagger
	moves  *perceptron.Classifier

	sentences     int
	nonProjective int
}

// New creates an untrained parser.
func New() *Parser {
	return &Parser{
		tagger: tagger.New(),
		moves:  perceptron.New(),
	}
}

// Update trains on one ROOT-prefixed sentence. The tagger is trained first; the
// tags it predicted, not the gold tags, feed the move features while the
// oracle is replayed from the initial configuration, one classifier update per
// transition. It returns the predicted tags and the tree the oracle built,
// which differs from gold only for non-projective trees.
func (p *Parser) Update(words, tags []string, heads []int) (*Result, error) {
	if p.moves.Finalized() {
		return nil, perceptron.ErrFinalized
	}
	if err := validate(words, tags, heads); err != nil {
		return nil, err
	}

	predicted, err := p.tagger.Update(words, tags)
	if err != nil {
		return nil, err
	}

	c := transition.Initial(len(words))
	for !c.Terminal() {
		gold := transition.Oracle(c, heads)
		if _, err := p.moves.Update(transition.Features(words, predicted, c), gold.String()); err != nil {
			return nil, err
		}
		if c, err = c.Apply(gold); err != nil {
			return nil, err
		}
	}

	p.sentences++
	built := c.Heads()
	if !slices.Equal(built, heads) {
		p.nonProjective++
		slog.Debug("Oracle could not rebuild gold tree",
			"sentence", p.sentences, "projective", transition.IsProjective(heads))
	}
	return &Result{Words: words, Tags: predicted, Heads: built}, nil
}

func validate(words, tags []string, heads []int) error {
	if len(words) != len(tags) || len(words) != len(heads) {
		return fmt.Errorf("%w: %d words, %d tags, %d heads", ErrLengthMismatch, len(words), len(tags), len(heads))
	}
	if len(words) == 0 || words[0] != tagger.Root {
		return ErrMissingRoot
	}
	if heads[0] != 0 {
		return fmt.Errorf("%w: ROOT has head %d", ErrInvalidHead, heads[0])
	}
	for d := 1; d < len(heads); d++ {
		if h := heads[d]; h < 0 || h >= len(heads) || h == d {
			return fmt.Errorf("%w: token %d has head %d", ErrInvalidHead, d, h)
		}
	}
	return nil
}

// Parse tags and parses a plain sentence (without ROOT) with a beam of the
// given width.
func (p *Parser) Parse(words []string, width int) (*Result, error) {
	return p.ParseWith(words, &search.Beam{Width: width})
}

// ParseWith is Parse with full control over the beam.
func (p *Parser) ParseWith(words []string, beam *search.Beam) (*Result, error) {
	if beam.Width < 1 {
		return nil, fmt.Errorf("%w: got %d", search.ErrInvalidWidth, beam.Width)
	}
	if len(p.moves.Classes()) == 0 {
		return nil, perceptron.ErrNotTrained
	}

	rooted := make([]string, 0, len(words)+1)
	rooted = append(rooted, tagger.Root)
	rooted = append(rooted, words...)

	tags, err := p.tagger.TagRooted(rooted)
	if err != nil {
		return nil, err
	}
	best, err := beam.Decode(rooted, tags, moveScorer{p.moves})
	if err != nil {
		return nil, err
	}
	return &Result{Words: rooted, Tags: tags, Heads: best.Config.Heads()}, nil
}

// moveScorer scores a move by restricting the classifier to that one class.
type moveScorer struct {
	moves *perceptron.Classifier
}

func (s moveScorer) Score(features []string, m transition.Move) (float64, error) {
	_, score, err := s.moves.Predict(features, m.String())
	return score, err
}

// Finalize averages the weights of the move classifier and the tagger. It may
// run only once; the parser is read-only afterwards.
func (p *Parser) Finalize() error {
	if err := p.moves.Finalize(); err != nil {
		return err
	}
	return p.tagger.Finalize()
}

// Tagger returns the parser's tagger.
func (p *Parser) Tagger() *tagger.Tagger {
	return p.tagger
}

// Moves returns the move classifier.
func (p *Parser) Moves() *perceptron.Classifier {
	return p.moves
}

// Sentences returns the number of sentences trained on.
func (p *Parser) Sentences() int {
	return p.sentences
}

// NonProjective returns how many training sentences the oracle could not
// rebuild, i.e. had non-projective gold trees.
func (p *Parser) NonProjective() int {
	return p.nonProjective
}
