package corpus

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sample = `# sent_id = 1
# text = Dogs bark.
1	Dogs	dog	NOUN	NNS	_	2	nsubj	_	_
2	bark	bark	VERB	VBP	_	0	root	_	_
3	.	.	PUNCT	.	_	2	punct	_	SpaceAfter=No

# sent_id = 2
1-2	Don't	_	_	_	_	_	_	_	_
1	Do	do	AUX	VB	_	3	aux	_	_
2	n't	not	PART	RB	_	3	advmod	_	_
2.1	x	x	X	_	_	_	_	_	_
3	go	go	VERB	VB	_	0	root	_	_
`

func TestRead(t *testing.T) {
	sentences, err := Read(strings.NewReader(sample), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(sentences))
	}

	want := Sentence{
		Words: []string{"<ROOT>", "Dogs", "bark", "."},
		Tags:  []string{"<ROOT>", "NOUN", "VERB", "PUNCT"},
		Heads: []int{0, 2, 0, 2},
	}
	if !reflect.DeepEqual(sentences[0], want) {
		t.Errorf("sentence 0 = %+v, want %+v", sentences[0], want)
	}

	second := sentences[1]
	if !reflect.DeepEqual(second.Words, []string{"<ROOT>", "Do", "n't", "go"}) {
		t.Errorf("sentence 1 words = %v", second.Words)
	}
	if !reflect.DeepEqual(second.Heads, []int{0, 3, 3, 0}) {
		t.Errorf("sentence 1 heads = %v", second.Heads)
	}
}

func TestReadOptions(t *testing.T) {
	nonProjective := "1\ta\t_\tX\t_\t_\t3\t_\t_\t_\n" +
		"2\tb\t_\tX\t_\t_\t4\t_\t_\t_\n" +
		"3\tc\t_\tX\t_\t_\t0\t_\t_\t_\n" +
		"4\td\t_\tX\t_\t_\t3\t_\t_\t_\n\n"
	input := nonProjective + sample

	all, err := Read(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("got %d sentences, want 3", len(all))
	}

	projective, err := Read(strings.NewReader(input), Options{DropNonProjective: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(projective) != 2 {
		t.Errorf("got %d projective sentences, want 2", len(projective))
	}

	limited, err := Read(strings.NewReader(input), Options{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("got %d sentences with limit 1", len(limited))
	}
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"few fields", "1\tDogs\tdog\tNOUN\n"},
		{"bad head", "1\tDogs\t_\tNOUN\t_\t_\tx\t_\t_\t_\n"},
		{"skipped id", "2\tDogs\t_\tNOUN\t_\t_\t0\t_\t_\t_\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.input), Options{}); !errors.Is(err, ErrMalformed) {
				t.Errorf("err = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.conllu")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	sentences, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sentences) != 2 {
		t.Errorf("got %d sentences, want 2", len(sentences))
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.conllu"), Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteReadBack(t *testing.T) {
	sentences, err := Read(strings.NewReader(sample), Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	for _, s := range sentences {
		if err := Write(&buf, s); err != nil {
			t.Fatal(err)
		}
	}
	again, err := Read(&buf, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again, sentences) {
		t.Errorf("read back %+v, want %+v", again, sentences)
	}
}

func TestReadText(t *testing.T) {
	input := "# headlines\nStocks  fall on Monday.\n\nCouncil approves budget\n"
	got, err := ReadText(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"Stocks", "fall", "on", "Monday", "."},
		{"Council", "approves", "budget"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadText = %v, want %v", got, want)
	}
}
