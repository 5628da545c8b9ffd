package headline

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sonnert/SyntacticParser/parser"
)

func TestAnalyze(t *testing.T) {
	res := &parser.Result{
		Words: []string{"<ROOT>", "Council", "approves", "new", "budget", "today"},
		Tags:  []string{"<ROOT>", "NOUN", "VERB", "ADJ", "NOUN", "NOUN"},
		Heads: []int{0, 2, 0, 4, 2, 2},
	}
	a, err := Analyze(res)
	if err != nil {
		t.Fatal(err)
	}
	if a.Root != 2 || a.Verb != "approves" {
		t.Errorf("root = %d %q, want 2 approves", a.Root, a.Verb)
	}
	if !reflect.DeepEqual(a.Left, []string{"Council"}) {
		t.Errorf("Left = %v", a.Left)
	}
	if !reflect.DeepEqual(a.Right, []string{"budget", "today"}) {
		t.Errorf("Right = %v", a.Right)
	}
	if got, want := a.String(), "LEFT: [Council] ROOT: approves RIGHT: [budget today]"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

func TestAnalyzeLastVerbWins(t *testing.T) {
	res := &parser.Result{
		Words: []string{"<ROOT>", "Stocks", "fall", "markets", "rally"},
		Tags:  []string{"<ROOT>", "NOUN", "VERB", "NOUN", "VERB"},
		Heads: []int{0, 2, 0, 4, 0},
	}
	a, err := Analyze(res)
	if err != nil {
		t.Fatal(err)
	}
	if a.Verb != "rally" {
		t.Errorf("Verb = %q, want rally", a.Verb)
	}
	if !reflect.DeepEqual(a.Left, []string{"markets"}) || a.Right != nil {
		t.Errorf("Left = %v, Right = %v", a.Left, a.Right)
	}
}

func TestAnalyzeNoVerb(t *testing.T) {
	res := &parser.Result{
		Words: []string{"<ROOT>", "Budget", "news"},
		Tags:  []string{"<ROOT>", "NOUN", "NOUN"},
		Heads: []int{0, 2, 0},
	}
	a, err := Analyze(res)
	if !errors.Is(err, ErrNoVerbRoot) {
		t.Fatalf("err = %v, want ErrNoVerbRoot", err)
	}
	if a.Found() {
		t.Error("Found = true")
	}
	if a.String() != ErrNoVerbRoot.Error() {
		t.Errorf("String = %q", a.String())
	}
}
