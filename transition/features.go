package transition

// Sentinels for feature slots that point past the buffer or below the stack.
const (
	EOS   = "<EOS>"
	Empty = "<EMPTY>"
)

// Features extracts the six-slot feature vector of a configuration: word and
// tag of the buffer front and of the two topmost stack elements.
func Features(words, tags []string, c Configuration) []string {
	b0w, b0t := EOS, EOS
	if c.I < len(words) {
		b0w, b0t = words[c.I], tags[c.I]
	}
	s0w, s0t := Empty, Empty
	if top, ok := c.Peek(0); ok {
		s0w, s0t = words[top], tags[top]
	}
	s1w, s1t := Empty, Empty
	if second, ok := c.Peek(1); ok {
		s1w, s1t = words[second], tags[second]
	}
	return []string{
		"b0.w=" + b0w,
		"b0.t=" + b0t,
		"s0.w=" + s0w,
		"s0.t=" + s0t,
		"s1.w=" + s1w,
		"s1.t=" + s1t,
	}
}
