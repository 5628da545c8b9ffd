package tagger

import (
	"maps"

	"github.com/sonnert/SyntacticParser/perceptron"
)

// Record is the persisted form of a tagger. Word frequencies are stored too:
// without them every word would look NOT FREQUENT after reloading.
type Record struct {
	Tags        []string                      `json:"tags"`
	Weights     map[string]map[string]float64 `json:"weights"`
	Frequencies map[string]int                `json:"frequencies"`
}

// Record exports the tagger.
func (t *Tagger) Record() Record {
	return Record{
		Tags:        t.Tags(),
		Weights:     t.Weights(),
		Frequencies: maps.Clone(t.freq),
	}
}

// FromRecord rebuilds a finalized tagger.
func FromRecord(r Record) (*Tagger, error) {
	model, err := perceptron.FromRecord(perceptron.Record{Classes: r.Tags, Weights: r.Weights})
	if err != nil {
		return nil, err
	}
	freq := maps.Clone(r.Frequencies)
	if freq == nil {
		freq = make(map[string]int)
	}
	return &Tagger{model: model, freq: freq}, nil
}
