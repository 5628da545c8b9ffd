// Package tagger implements a greedy left-to-right part-of-speech tagger on top
// of an averaged perceptron.
package tagger

import (
	"errors"
	"fmt"

	"github.com/sonnert/SyntacticParser/perceptron"
)

// Root is the word and tag of the virtual ROOT token that prefixes every
// sentence seen by the parser.
const Root = "<ROOT>"

// ErrLengthMismatch is returned when words and tags differ in length.
var ErrLengthMismatch = errors.New("words and tags differ in length")

// Tagger predicts one tag per word, using the tags already predicted for the
// words to its left.
type Tagger struct {
	model *perceptron.Classifier
	// freq counts word occurrences seen by Update; frozen once training stops.
	freq map[string]int
}

// New creates an untrained tagger.
func New() *Tagger {
	return &Tagger{
		model: perceptron.New(),
		freq:  make(map[string]int),
	}
}

// Tag tags a plain sentence and returns one tag per word. The ROOT token is
// added and removed internally so that positions line up with training.
func (t *Tagger) Tag(words []string) ([]string, error) {
	rooted := make([]string, 0, len(words)+1)
	rooted = append(rooted, Root)
	rooted = append(rooted, words...)
	tags, err := t.TagRooted(rooted)
	if err != nil {
		return nil, err
	}
	return tags[1:], nil
}

// TagRooted tags a sentence whose first word is ROOT. The ROOT position always
// receives the ROOT tag; every other position is classified greedily from the
// tags predicted so far.
func (t *Tagger) TagRooted(words []string) ([]string, error) {
	if len(t.model.Classes()) == 0 {
		return nil, perceptron.ErrNotTrained
	}
	tags := make([]string, 0, len(words))
	for i := range words {
		if i == 0 && words[0] == Root {
			tags = append(tags, Root)
			continue
		}
		tag, _, err := t.model.Predict(t.Features(words, i, tags))
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Update trains the tagger on one sentence. Features are built from the gold
// tag history. It returns what the classifier predicted at each position
// before being updated.
func (t *Tagger) Update(words, gold []string) ([]string, error) {
	if len(words) != len(gold) {
		return nil, fmt.Errorf("%w: %d words, %d tags", ErrLengthMismatch, len(words), len(gold))
	}
	if t.model.Finalized() {
		return nil, perceptron.ErrFinalized
	}
	predicted := make([]string, len(words))
	for i, w := range words {
		t.freq[w]++
		p, err := t.model.Update(t.Features(words, i, gold), gold[i])
		if err != nil {
			return nil, err
		}
		predicted[i] = p
	}
	return predicted, nil
}

// Finalize averages the tagger's weights. It may run only once.
func (t *Tagger) Finalize() error {
	return t.model.Finalize()
}

// Tags returns the known tags in the order they were first observed.
func (t *Tagger) Tags() []string {
	return t.model.Classes()
}

// Weights returns a copy of the tag weight table.
func (t *Tagger) Weights() map[string]map[string]float64 {
	return t.model.Weights()
}

// Frequency returns how often word occurred during training.
func (t *Tagger) Frequency(word string) int {
	return t.freq[word]
}
