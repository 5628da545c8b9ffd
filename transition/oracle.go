package transition

// Oracle returns the move that leads towards the gold tree: LEFT-ARC when the
// top is the gold head of the second element and the second has no gold
// dependent left without a head, then RIGHT-ARC under the mirrored condition,
// otherwise SHIFT. Following it from Initial rebuilds gold exactly when gold is
// projective. For a non-projective tree the buffer can run dry while neither
// arc applies; the oracle then reduces with RIGHT-ARC so the path still ends.
func Oracle(c Configuration, gold []int) Move {
	top, _ := c.Peek(0)
	second, _ := c.Peek(1)
	var heads []int

	if c.CanApply(LeftArc) && gold[second] == top {
		heads = c.Heads()
		if complete(second, heads, gold) {
			return LeftArc
		}
	}
	if c.CanApply(RightArc) && gold[top] == second {
		if heads == nil {
			heads = c.Heads()
		}
		if complete(top, heads, gold) {
			return RightArc
		}
	}
	if !c.CanApply(Shift) {
		return RightArc
	}
	return Shift
}

// complete reports whether every gold dependent of h already has a head.
func complete(h int, heads, gold []int) bool {
	for d, g := range gold {
		if g == h && heads[d] == 0 {
			return false
		}
	}
	return true
}

// IsProjective reports whether no two arcs of the tree cross when drawn above
// the sentence, with ROOT at position 0.
func IsProjective(heads []int) bool {
	for d1 := 1; d1 < len(heads); d1++ {
		l1, r1 := min(d1, heads[d1]), max(d1, heads[d1])
		for d2 := 1; d2 < len(heads); d2++ {
			l2, r2 := min(d2, heads[d2]), max(d2, heads[d2])
			if l1 < l2 && l2 < r1 && r1 < r2 {
				return false
			}
		}
	}
	return true
}
