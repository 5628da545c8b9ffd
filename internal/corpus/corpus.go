// Package corpus reads and writes dependency treebanks in CoNLL-U format and
// plain text sentences for parsing.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sonnert/SyntacticParser/internal/textutil"
	"github.com/sonnert/SyntacticParser/tagger"
	"github.com/sonnert/SyntacticParser/transition"
)

// Column positions of the CoNLL-U fields used here.
const (
	colID   = 0
	colForm = 1
	colUPOS = 3
	colHead = 6

	numFields = 10
)

// ErrMalformed is returned for a CoNLL-U row that cannot be read.
var ErrMalformed = errors.New("malformed CoNLL-U row")

// Sentence is a ROOT-prefixed training sentence: index 0 holds the ROOT word,
// the ROOT tag and head 0.
type Sentence struct {
	Words []string
	Tags  []string
	Heads []int
}

// Len returns the number of tokens, ROOT included.
func (s Sentence) Len() int {
	return len(s.Words)
}

func newSentence() Sentence {
	return Sentence{
		Words: []string{tagger.Root},
		Tags:  []string{tagger.Root},
		Heads: []int{0},
	}
}

// Options controls which sentences Read returns.
type Options struct {
	// Limit stops reading after this many sentences; 0 reads all.
	Limit int
	// DropNonProjective skips sentences whose gold tree has crossing arcs.
	DropNonProjective bool
}

// Read parses CoNLL-U sentences. Comment lines are skipped, as are multiword
// token ranges ("1-2") and empty nodes ("1.1"). A blank line ends a sentence;
// a final sentence without a trailing blank line is kept.
func Read(r io.Reader, opts Options) ([]Sentence, error) {
	var sentences []Sentence
	current := newSentence()

	flush := func() bool {
		if current.Len() > 1 {
			if !opts.DropNonProjective || transition.IsProjective(current.Heads) {
				sentences = append(sentences, current)
			}
		}
		current = newSentence()
		return opts.Limit > 0 && len(sentences) >= opts.Limit
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		row := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(row, "#") {
			continue
		}
		if strings.TrimSpace(row) == "" {
			if flush() {
				return sentences, nil
			}
			continue
		}

		fields := strings.Split(row, "\t")
		if len(fields) != numFields {
			fields = strings.Fields(row)
		}
		if len(fields) < numFields {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrMalformed, line, len(fields), numFields)
		}
		id := fields[colID]
		if strings.ContainsAny(id, "-.") {
			continue
		}
		if want := strconv.Itoa(current.Len()); id != want {
			return nil, fmt.Errorf("%w: line %d has id %s, want %s", ErrMalformed, line, id, want)
		}
		head, err := parseHead(fields[colHead])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		current.Words = append(current.Words, fields[colForm])
		current.Tags = append(current.Tags, fields[colUPOS])
		current.Heads = append(current.Heads, head)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return sentences, nil
}

func parseHead(value string) (int, error) {
	if value == "_" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// ReadFile reads a CoNLL-U file.
func ReadFile(path string, opts Options) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sentences, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sentences, nil
}

// ReadText reads one sentence per line and tokenizes it. Blank lines and lines
// starting with '#' are skipped.
func ReadText(r io.Reader) ([][]string, error) {
	var sentences [][]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := textutil.NormalizeWhitespaces(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sentences = append(sentences, textutil.Tokenize(line))
	}
	return sentences, scanner.Err()
}

// Write prints a ROOT-prefixed sentence as a CoNLL-U block followed by a blank
// line. Columns that are not predicted are written as "_".
func Write(w io.Writer, s Sentence) error {
	bw := bufio.NewWriter(w)
	for i := 1; i < s.Len(); i++ {
		fields := []string{
			strconv.Itoa(i),
			s.Words[i],
			"_",
			s.Tags[i],
			"_",
			"_",
			strconv.Itoa(s.Heads[i]),
			"_",
			"_",
			"_",
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	return bw.Flush()
}
