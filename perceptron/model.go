package perceptron

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Record is the persisted form of a finalized classifier: the class list in
// registration order and the weight table keyed by class, then feature.
type Record struct {
	Classes []string                      `json:"classes"`
	Weights map[string]map[string]float64 `json:"weights"`
}

// Record exports the classifier's classes and weights.
func (c *Classifier) Record() Record {
	return Record{
		Classes: c.Classes(),
		Weights: c.Weights(),
	}
}

// FromRecord rebuilds a finalized classifier from a record. Feature IDs are
// assigned in sorted key order so that loading is deterministic.
func FromRecord(r Record) (*Classifier, error) {
	c := New()
	for _, class := range r.Classes {
		if _, ok := c.classes.lookup(class); ok {
			return nil, fmt.Errorf("duplicate class %q", class)
		}
		c.register(class)
	}
	for class := range r.Weights {
		if _, ok := c.classes.lookup(class); !ok {
			return nil, fmt.Errorf("weights for unknown class %q", class)
		}
	}

	var features []string
	for _, row := range r.Weights {
		features = append(features, slices.Collect(maps.Keys(row))...)
	}
	slices.Sort(features)
	for _, f := range slices.Compact(features) {
		c.features.intern(f)
	}

	for class, row := range r.Weights {
		cid, _ := c.classes.lookup(class)
		for f, w := range row {
			fid, _ := c.features.lookup(f)
			c.weights[cid][fid] = w
		}
	}
	c.acc = nil
	c.finalized = true
	return c, nil
}

// MarshalJSON encodes the classifier as its Record.
func (c *Classifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Record())
}

// UnmarshalJSON decodes a Record into c.
func (c *Classifier) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	loaded, err := FromRecord(r)
	if err != nil {
		return err
	}
	*c = *loaded
	return nil
}
