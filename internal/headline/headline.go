// Package headline splits a parsed headline into the nouns before and after its
// main verb.
package headline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sonnert/SyntacticParser/parser"
)

// Universal POS tags the analysis looks for.
const (
	VerbTag = "VERB"
	NounTag = "NOUN"
)

// ErrNoVerbRoot is returned when no verb is attached to ROOT.
var ErrNoVerbRoot = errors.New("could not find verb root")

// Analysis is the subject/object split of a headline around its root verb.
type Analysis struct {
	Words []string `json:"words"`
	Tags  []string `json:"tags"`
	Heads []int    `json:"heads"`

	// Root is the index of the root verb in Words, 0 when none was found.
	Root  int      `json:"root"`
	Verb  string   `json:"verb,omitempty"`
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// Found reports whether a root verb was found.
func (a *Analysis) Found() bool {
	return a.Root > 0
}

// String renders the analysis on one line.
func (a *Analysis) String() string {
	if !a.Found() {
		return ErrNoVerbRoot.Error()
	}
	return fmt.Sprintf("LEFT: [%s] ROOT: %s RIGHT: [%s]",
		strings.Join(a.Left, " "), a.Verb, strings.Join(a.Right, " "))
}

// Analyze picks the last VERB attached to ROOT and collects its NOUN
// dependents, split by side. res must be ROOT-prefixed as returned by
// parser.Parse. The error is ErrNoVerbRoot when no verb heads the tree; the
// returned analysis still carries the parse.
func Analyze(res *parser.Result) (*Analysis, error) {
	a := &Analysis{Words: res.Words, Tags: res.Tags, Heads: res.Heads}
	for i := 1; i < len(res.Heads); i++ {
		if res.Heads[i] == 0 && res.Tags[i] == VerbTag {
			a.Root = i
		}
	}
	if !a.Found() {
		return a, ErrNoVerbRoot
	}
	a.Verb = res.Words[a.Root]
	for i := 1; i < len(res.Heads); i++ {
		if res.Heads[i] != a.Root || res.Tags[i] != NounTag {
			continue
		}
		if i < a.Root {
			a.Left = append(a.Left, res.Words[i])
		} else {
			a.Right = append(a.Right, res.Words[i])
		}
	}
	return a, nil
}
