package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sonnert/SyntacticParser/perceptron"
	"github.com/sonnert/SyntacticParser/tagger"
	"github.com/sonnert/SyntacticParser/transition"
)

// Record is the persisted form of a finalized parser.
type Record struct {
	Classifier perceptron.Record `json:"classifier"`
	Tagger     tagger.Record     `json:"tagger"`
}

// Record exports the move classifier and the tagger.
func (p *Parser) Record() Record {
	return Record{
		Classifier: p.moves.Record(),
		Tagger:     p.tagger.Record(),
	}
}

// FromRecord rebuilds a finalized parser.
func FromRecord(r Record) (*Parser, error) {
	for _, class := range r.Classifier.Classes {
		if _, err := transition.ParseMove(class); err != nil {
			return nil, fmt.Errorf("classifier: %w", err)
		}
	}
	moves, err := perceptron.FromRecord(r.Classifier)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	t, err := tagger.FromRecord(r.Tagger)
	if err != nil {
		return nil, fmt.Errorf("tagger: %w", err)
	}
	return &Parser{tagger: t, moves: moves}, nil
}

// SaveModel serializes the parser to a JSON file.
func SaveModel(p *Parser, path string) error {
	data, err := json.MarshalIndent(p.Record(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadModel deserializes a parser from a JSON file.
func LoadModel(path string) (*Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalModel(data)
}

// MarshalModel serializes the parser to JSON bytes.
func MarshalModel(p *Parser) ([]byte, error) {
	return json.Marshal(p.Record())
}

// UnmarshalModel deserializes a parser from JSON bytes.
func UnmarshalModel(data []byte) (*Parser, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return FromRecord(r)
}
