// Package syntacticparser tags sentences with parts of speech and parses them
// into unlabelled dependency trees.
//
// It wraps an averaged perceptron tagger and an arc-standard parser decoded
// with a beam search.
//
//	m, _ := syntacticparser.New()
//	res, _ := m.ParseText("Dogs bark.")
//	fmt.Println(res.Tags)  // [<ROOT> NOUN VERB PUNCT]
//	fmt.Println(res.Heads) // [0 2 0 2]
package syntacticparser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sonnert/SyntacticParser/internal/headline"
	"github.com/sonnert/SyntacticParser/internal/htmlutil"
	"github.com/sonnert/SyntacticParser/internal/textutil"
	"github.com/sonnert/SyntacticParser/parser"
	"github.com/sonnert/SyntacticParser/search"
)

// ModelName is the file name New looks for.
const ModelName = "model.json"

// DefaultCacheSize is the number of parses a Model remembers.
const DefaultCacheSize = 1024

// Model is a trained, read-only parser plus the beam it decodes with. It is
// safe for concurrent use.
type Model struct {
	parser *parser.Parser
	beam   search.Beam
	cache  *lru.Cache[string, *parser.Result]
}

// Option configures a Model.
type Option func(*Model)

// WithBeam sets the beam used by Parse. The default is a width-1 beam, i.e.
// greedy decoding.
func WithBeam(b search.Beam) Option {
	return func(m *Model) {
		m.beam = b
	}
}

// WithCacheSize sets how many parses are cached; 0 disables the cache.
func WithCacheSize(n int) Option {
	return func(m *Model) {
		if n <= 0 {
			m.cache = nil
			return
		}
		m.cache, _ = lru.New[string, *parser.Result](n)
	}
}

// NewModel wraps a finalized parser.
func NewModel(p *parser.Parser, opts ...Option) *Model {
	m := &Model{parser: p, beam: search.Beam{Width: 1}}
	m.cache, _ = lru.New[string, *parser.Result](DefaultCacheSize)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ModelDir returns the directory where downloaded models are kept.
func ModelDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "syntacticparser")
}

// New loads "model.json", searching the current directory, its parents up to
// the module root (where go.mod lives), then ModelDir.
func New(opts ...Option) (*Model, error) {
	path, err := findModel(ModelName)
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	return Load(path, opts...)
}

func findModel(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cached := filepath.Join(ModelDir(), name)
	if _, err := os.Stat(cached); err == nil {
		return cached, nil
	}
	return "", fmt.Errorf("%s not found", name)
}

// Load loads a trained model from a file written by Save.
func Load(path string, opts ...Option) (*Model, error) {
	p, err := parser.LoadModel(path)
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	return NewModel(p, opts...), nil
}

// Save writes the model to a file.
func (m *Model) Save(path string) error {
	if m.parser == nil {
		return errors.New("syntacticparser: model not initialized")
	}
	if err := parser.SaveModel(m.parser, path); err != nil {
		return fmt.Errorf("syntacticparser: %w", err)
	}
	return nil
}

// Parser returns the underlying parser.
func (m *Model) Parser() *parser.Parser {
	return m.parser
}

// Beam returns the beam Parse decodes with.
func (m *Model) Beam() search.Beam {
	return m.beam
}

// Tag returns one part-of-speech tag per word.
func (m *Model) Tag(words []string) ([]string, error) {
	tags, err := m.parser.Tagger().Tag(words)
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	return tags, nil
}

// Parse tags and parses a tokenized sentence. The result is ROOT-prefixed and
// owned by the caller.
func (m *Model) Parse(words []string) (*parser.Result, error) {
	key := strings.Join(words, "\x00")
	if m.cache != nil {
		if res, ok := m.cache.Get(key); ok {
			return cloneResult(res), nil
		}
	}
	res, err := m.parser.ParseWith(words, &m.beam)
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	if m.cache != nil {
		m.cache.Add(key, cloneResult(res))
	}
	return res, nil
}

// ParseText tokenizes a raw sentence and parses it.
func (m *Model) ParseText(text string) (*parser.Result, error) {
	words := textutil.Tokenize(text)
	if len(words) == 0 {
		return nil, errors.New("syntacticparser: empty sentence")
	}
	return m.Parse(words)
}

func cloneResult(r *parser.Result) *parser.Result {
	return &parser.Result{
		Words: slices.Clone(r.Words),
		Tags:  slices.Clone(r.Tags),
		Heads: slices.Clone(r.Heads),
	}
}

// AnalyzeHeadlines parses each headline and splits it around its root verb.
// Headlines without a verb root are returned with Found() false.
func (m *Model) AnalyzeHeadlines(headlines []string) ([]*headline.Analysis, error) {
	out := make([]*headline.Analysis, 0, len(headlines))
	for _, h := range headlines {
		res, err := m.ParseText(h)
		if err != nil {
			return nil, err
		}
		a, err := headline.Analyze(res)
		if err != nil && !errors.Is(err, headline.ErrNoVerbRoot) {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// AnalyzeHTML extracts the title and h1-h3 headings of a page and analyzes
// them as headlines.
func (m *Model) AnalyzeHTML(r io.Reader, contentType string) ([]*headline.Analysis, error) {
	doc, err := htmlutil.LoadHTML(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("syntacticparser: %w", err)
	}
	return m.AnalyzeHeadlines(htmlutil.Headlines(doc))
}
