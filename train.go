package syntacticparser

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/sonnert/SyntacticParser/internal/corpus"
	"github.com/sonnert/SyntacticParser/parser"
	"github.com/sonnert/SyntacticParser/search"
)

// TrainConfig holds configuration for training.
type TrainConfig struct {
	// Epochs is the number of passes over the training sentences.
	Epochs int `yaml:"epochs"`
	// Limit caps the number of training sentences read; 0 reads all.
	Limit int `yaml:"limit"`
	// DropNonProjective skips gold trees the oracle cannot rebuild.
	DropNonProjective bool `yaml:"drop_non_projective"`

	BeamWidth   int    `yaml:"beam_width"`
	ScoreMode   string `yaml:"score_mode"`
	Concurrency int    `yaml:"concurrency"`
	CacheSize   int    `yaml:"cache_size"`

	// Progress is called after every training sentence.
	Progress func(done, total int) `yaml:"-"`
}

// DefaultTrainConfig returns the default training configuration: one pass,
// greedy decoding with per-move scores.
func DefaultTrainConfig() *TrainConfig {
	return &TrainConfig{
		Epochs:    1,
		BeamWidth: 1,
		ScoreMode: search.StepScore.String(),
		CacheSize: DefaultCacheSize,
	}
}

// LoadTrainConfig reads a YAML configuration. Keys that are absent keep their
// default values.
func LoadTrainConfig(path string) (*TrainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := DefaultTrainConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c *TrainConfig) validate() error {
	if c.Epochs < 1 {
		return fmt.Errorf("epochs must be at least 1, got %d", c.Epochs)
	}
	if c.BeamWidth < 1 {
		return fmt.Errorf("%w: got %d", search.ErrInvalidWidth, c.BeamWidth)
	}
	_, err := search.ParseScoreMode(c.ScoreMode)
	return err
}

// Beam returns the decoding beam described by the configuration.
func (c *TrainConfig) Beam() (search.Beam, error) {
	mode, err := search.ParseScoreMode(c.ScoreMode)
	if err != nil {
		return search.Beam{}, err
	}
	return search.Beam{Width: c.BeamWidth, Mode: mode, Concurrency: c.Concurrency}, nil
}

// Options returns the Model options described by the configuration.
func (c *TrainConfig) Options() ([]Option, error) {
	beam, err := c.Beam()
	if err != nil {
		return nil, err
	}
	return []Option{WithBeam(beam), WithCacheSize(c.CacheSize)}, nil
}

// EvalConfig holds configuration for evaluation.
type EvalConfig struct {
	// Folds is the number of cross-validation folds used by CrossValidate.
	Folds int
	// Progress is called after every evaluated sentence.
	Progress func(done, total int)
}

// EvalResult holds tagging and attachment scores. ROOT is never counted.
type EvalResult struct {
	Sentences int

	TagCorrect  int
	TagTotal    int
	TagAccuracy float64

	// UAS is the unlabelled attachment score: the share of tokens whose
	// predicted head is the gold head.
	HeadCorrect int
	HeadTotal   int
	UAS         float64

	// Per-sentence UAS spread.
	SentenceUASMean   float64
	SentenceUASStdDev float64

	sentenceUAS []float64
}

// Train trains a model on a CoNLL-U treebank.
func Train(dataPath string, config *TrainConfig) (*Model, error) {
	if config == nil {
		config = DefaultTrainConfig()
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	sentences, err := corpus.ReadFile(dataPath, corpus.Options{
		Limit:             config.Limit,
		DropNonProjective: config.DropNonProjective,
	})
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("syntacticparser: no sentences found in %s", dataPath)
	}

	p, err := trainSentences(sentences, config)
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	opts, err := config.Options()
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	return NewModel(p, opts...), nil
}

func trainSentences(sentences []corpus.Sentence, config *TrainConfig) (*parser.Parser, error) {
	p := parser.New()
	total := config.Epochs * len(sentences)
	done := 0
	for epoch := range config.Epochs {
		correct, tokens := 0, 0
		for i, s := range sentences {
			res, err := p.Update(s.Words, s.Tags, s.Heads)
			if err != nil {
				return nil, fmt.Errorf("sentence %d: %w", i+1, err)
			}
			correct += countEqual(res.Tags[1:], s.Tags[1:])
			tokens += s.Len() - 1
			done++
			if config.Progress != nil {
				config.Progress(done, total)
			}
		}
		slog.Debug("Epoch completed", "epoch", epoch+1,
			"tag_accuracy", ratio(correct, tokens))
	}
	if err := p.Finalize(); err != nil {
		return nil, err
	}
	slog.Info("Training completed", "sentences", len(sentences), "epochs", config.Epochs,
		"non_projective", p.NonProjective()/config.Epochs,
		"features", p.Moves().NumFeatures())
	return p, nil
}

// Evaluate parses every sentence of a CoNLL-U treebank with m and compares
// the predicted tags and heads to the gold ones.
func Evaluate(m *Model, dataPath string, config *EvalConfig) (*EvalResult, error) {
	sentences, err := corpus.ReadFile(dataPath, corpus.Options{})
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("syntacticparser: no sentences found in %s", dataPath)
	}
	result := &EvalResult{}
	if err := evaluateSentences(m, sentences, config, result); err != nil {
		return nil, err
	}
	result.finish()
	return result, nil
}

// CrossValidate splits a treebank into folds, trains on all folds but one and
// evaluates on the held out one, for every fold. Scores are pooled.
func CrossValidate(dataPath string, trainConfig *TrainConfig, config *EvalConfig) (*EvalResult, error) {
	if trainConfig == nil {
		trainConfig = DefaultTrainConfig()
	}
	if err := trainConfig.validate(); err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	nFolds := 10
	if config != nil && config.Folds > 0 {
		nFolds = config.Folds
	}
	sentences, err := corpus.ReadFile(dataPath, corpus.Options{
		Limit:             trainConfig.Limit,
		DropNonProjective: trainConfig.DropNonProjective,
	})
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	if len(sentences) < 2 {
		return nil, fmt.Errorf("syntacticparser: need at least 2 sentences, found %d in %s", len(sentences), dataPath)
	}
	opts, err := trainConfig.Options()
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}

	result := &EvalResult{}
	for fold, testIdx := range kFold(len(sentences), nFolds) {
		testSet := makeTestSet(len(sentences), testIdx)
		train, test := splitByIndex(sentences, testSet)
		slog.Debug("Cross-validation fold", "fold", fold+1, "train", len(train), "test", len(test))

		p, err := trainSentences(train, &TrainConfig{Epochs: trainConfig.Epochs})
		if err != nil {
			return nil, fmt.Errorf("syntacticparser: fold %d: %w", fold+1, err)
		}
		if err := evaluateSentences(NewModel(p, opts...), test, config, result); err != nil {
			return nil, err
		}
	}
	result.finish()
	return result, nil
}

func evaluateSentences(m *Model, sentences []corpus.Sentence, config *EvalConfig, result *EvalResult) error {
	for i, s := range sentences {
		res, err := m.Parse(s.Words[1:])
		if err != nil {
			return fmt.Errorf("sentence %d: %w", i+1, err)
		}
		heads := countEqual(res.Heads[1:], s.Heads[1:])
		n := s.Len() - 1

		result.Sentences++
		result.TagCorrect += countEqual(res.Tags[1:], s.Tags[1:])
		result.TagTotal += n
		result.HeadCorrect += heads
		result.HeadTotal += n
		result.sentenceUAS = append(result.sentenceUAS, ratio(heads, n))

		if config != nil && config.Progress != nil {
			config.Progress(i+1, len(sentences))
		}
	}
	return nil
}

func (r *EvalResult) finish() {
	r.TagAccuracy = ratio(r.TagCorrect, r.TagTotal)
	r.UAS = ratio(r.HeadCorrect, r.HeadTotal)
	switch len(r.sentenceUAS) {
	case 0:
	case 1:
		r.SentenceUASMean = r.sentenceUAS[0]
	default:
		r.SentenceUASMean, r.SentenceUASStdDev = stat.MeanStdDev(r.sentenceUAS, nil)
	}
}

func countEqual[T comparable](a, b []T) int {
	n := 0
	for i := range min(len(a), len(b)) {
		if a[i] == b[i] {
			n++
		}
	}
	return n
}

func ratio(k, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(k) / float64(n)
}

// kFold assigns sentence i to fold i mod nFolds.
func kFold(n, nFolds int) [][]int {
	nFolds = min(nFolds, n)
	folds := make([][]int, nFolds)
	for i := range n {
		folds[i%nFolds] = append(folds[i%nFolds], i)
	}
	return folds
}

func makeTestSet(n int, testIdx []int) []bool {
	set := make([]bool, n)
	for _, i := range testIdx {
		set[i] = true
	}
	return set
}

func splitByIndex(sentences []corpus.Sentence, testSet []bool) (train, test []corpus.Sentence) {
	for i, s := range sentences {
		if testSet[i] {
			test = append(test, s)
		} else {
			train = append(train, s)
		}
	}
	return slices.Clip(train), slices.Clip(test)
}
