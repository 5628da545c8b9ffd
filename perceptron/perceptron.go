// Package perceptron implements an averaged multi-class perceptron over sparse
// string features.
//
// Each class owns a sparse weight row. A feature vector is a list of opaque
// string keys; duplicates count as repeated occurrences when scoring. Training
// is online: every call to Update is one time step, and Finalize replaces the
// raw weights by their average over all time steps.
//
//	c := perceptron.New()
//	c.Update([]string{"w=dogs", "suffix=s"}, "NOUN")
//	c.Update([]string{"w=bark", "suffix=k"}, "VERB")
//	_ = c.Finalize()
//	class, score, _ := c.Predict([]string{"w=dogs"})
package perceptron

import (
	"errors"
	"log/slog"
)

var (
	// ErrNotTrained is returned when a prediction has no candidate class,
	// i.e. before any class has been observed.
	ErrNotTrained = errors.New("model not trained")
	// ErrFinalized is returned by Update and Finalize once the weights have
	// been averaged.
	ErrFinalized = errors.New("model already finalized")
)

// Classifier is an averaged multi-class perceptron.
//
// Weights and accumulators are indexed by class ID, then feature ID. Both
// tables always hold the same keys: a key is created in both by the same step.
type Classifier struct {
	classes  *symbols
	features *symbols

	weights []map[int]float64
	acc     []map[int]float64

	// counter is the current time step, starting at 1.
	counter   int
	finalized bool
}

// New creates an empty classifier ready for training.
func New() *Classifier {
	return &Classifier{
		classes:  newSymbols(),
		features: newSymbols(),
		counter:  1,
	}
}

// Predict returns the highest scoring class among candidates (all known classes
// when none are given) together with its score. The score of a class is the sum
// of its weights over the feature multiset. Ties go to the lexicographically
// smallest class. Unknown features and unknown candidate classes weigh 0.
func (c *Classifier) Predict(features []string, candidates ...string) (string, float64, error) {
	if len(candidates) == 0 {
		candidates = c.classes.names
	}
	if len(candidates) == 0 {
		return "", 0, ErrNotTrained
	}
	class, score := c.best(countFeatures(c.features, features), candidates)
	return class, score, nil
}

func (c *Classifier) best(fc featureCounts, candidates []string) (string, float64) {
	best := candidates[0]
	bestScore := c.score(fc, best)
	for _, class := range candidates[1:] {
		score := c.score(fc, class)
		if score > bestScore || (score == bestScore && class < best) {
			best, bestScore = class, score
		}
	}
	return best, bestScore
}

func (c *Classifier) score(fc featureCounts, class string) float64 {
	id, ok := c.classes.lookup(class)
	if !ok {
		return 0
	}
	return fc.Dot(c.weights[id])
}

// Update trains on a single example and returns the class predicted before the
// update. On a mistake every distinct feature moves one unit towards gold and
// one unit away from the prediction, regardless of how often it occurs in the
// vector. The time step advances on every call.
func (c *Classifier) Update(features []string, gold string) (string, error) {
	if c.finalized {
		return "", ErrFinalized
	}
	goldID := c.register(gold)

	predicted, _ := c.best(countFeatures(c.features, features), c.classes.names)
	if predicted != gold {
		predID, _ := c.classes.lookup(predicted)
		for _, f := range distinct(c.features, features) {
			c.step(predID, f, -1)
			c.step(goldID, f, 1)
		}
	}
	c.counter++
	return predicted, nil
}

// register allocates weight and accumulator rows for a new class.
func (c *Classifier) register(class string) int {
	id := c.classes.intern(class)
	for len(c.weights) <= id {
		c.weights = append(c.weights, make(map[int]float64))
		c.acc = append(c.acc, make(map[int]float64))
	}
	return id
}

func (c *Classifier) step(class, feature int, delta float64) {
	c.weights[class][feature] += delta
	c.acc[class][feature] += delta * float64(c.counter)
}

// Finalize averages the weights over all time steps: w = w - acc/counter.
// It may run only once; afterwards the classifier is read-only and the
// accumulators are released.
func (c *Classifier) Finalize() error {
	if c.finalized {
		return ErrFinalized
	}
	n := float64(c.counter)
	for class, row := range c.acc {
		for f, total := range row {
			c.weights[class][f] -= total / n
		}
	}
	c.acc = nil
	c.finalized = true
	slog.Debug("Averaged perceptron weights",
		"classes", c.classes.size(), "features", c.features.size(), "steps", c.counter-1)
	return nil
}

// Finalized reports whether Finalize has run.
func (c *Classifier) Finalized() bool {
	return c.finalized
}

// Counter returns the current time step.
func (c *Classifier) Counter() int {
	return c.counter
}

// Classes returns the known classes in the order they were first observed.
func (c *Classifier) Classes() []string {
	return c.classes.list()
}

// Weights returns a copy of the weight table keyed by class, then feature.
func (c *Classifier) Weights() map[string]map[string]float64 {
	return c.table(c.weights)
}

// Accumulators returns a copy of the accumulator table, nil once finalized.
func (c *Classifier) Accumulators() map[string]map[string]float64 {
	if c.acc == nil {
		return nil
	}
	return c.table(c.acc)
}

func (c *Classifier) table(rows []map[int]float64) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(rows))
	for id, row := range rows {
		named := make(map[string]float64, len(row))
		for f, w := range row {
			named[c.features.name(f)] = w
		}
		out[c.classes.name(id)] = named
	}
	return out
}

// Weight returns the weight of one feature for one class, 0 when unknown.
func (c *Classifier) Weight(class, feature string) float64 {
	cid, ok := c.classes.lookup(class)
	if !ok {
		return 0
	}
	fid, ok := c.features.lookup(feature)
	if !ok {
		return 0
	}
	return c.weights[cid][fid]
}

// NumFeatures returns the number of distinct features seen in updates.
func (c *Classifier) NumFeatures() int {
	return c.features.size()
}
