package tagger

import (
	"strconv"

	"github.com/sonnert/SyntacticParser/internal/textutil"
)

// Sentinels used when a feature window runs past the sentence.
const (
	BOS    = "BOS"
	EOS    = "EOS"
	BOSTag = "BOS_TAG"
)

// FrequentThreshold is the training count above which a word is FREQUENT.
const FrequentThreshold = 70

// Features extracts the feature vector for position i. history holds the tags
// of positions before i (gold while training, predicted while tagging); only
// its first i entries are read. The vector always has the same length.
func (t *Tagger) Features(words []string, i int, history []string) []string {
	w := words[i]
	prev := at(words, i-1, BOS)
	next := at(words, i+1, EOS)
	next2 := at(words, i+2, EOS)
	past := history[:min(i, len(history))]
	t1 := at(past, i-1, BOSTag)
	t2 := at(past, i-2, BOSTag)
	t3 := at(past, i-3, BOSTag)

	shape := BOS
	if i > 0 {
		shape = "lower"
		if textutil.StartsUpper(w) {
			shape = "upper"
		}
	}
	length := "short"
	if textutil.RuneLen(w) > 3 {
		length = "long"
	}
	freq := "NOT FREQUENT"
	if t.freq[w] > FrequentThreshold {
		freq = "FREQUENT"
	}

	return []string{
		"bias",
		"w=" + w,
		"w-1=" + prev,
		"w+1=" + next,
		"w+2=" + next2,
		"w-1,w=" + prev + " " + w,
		"w,w+1=" + w + " " + next,
		"w-1,w+1=" + prev + " " + next,
		"t-1=" + t1,
		"t-1,t-2=" + t1 + " " + t2,
		"t-1,t-2,t-3=" + t1 + " " + t2 + " " + t3,
		"t-1,w=" + t1 + " " + w,
		"t-2,w=" + t2 + " " + w,
		"t-1,w-1=" + t1 + " " + prev,
		"t-1,w+1=" + t1 + " " + next,
		"p1=" + textutil.Prefix(w, 1),
		"p2=" + textutil.Prefix(w, 2),
		"p3=" + textutil.Prefix(w, 3),
		"s1=" + textutil.Suffix(w, 1),
		"s2=" + textutil.Suffix(w, 2),
		"s3=" + textutil.Suffix(w, 3),
		"shape=" + shape,
		"len=" + length,
		"ends-y=" + strconv.FormatBool(textutil.EndsWith(w, 'y')),
		"one-rune=" + strconv.FormatBool(textutil.RuneLen(w) == 1),
		"digit=" + strconv.FormatBool(textutil.HasDigit(w)),
		"freq=" + freq,
	}
}

func at(xs []string, i int, fallback string) string {
	if i < 0 || i >= len(xs) {
		return fallback
	}
	return xs[i]
}
