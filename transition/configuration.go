// Package transition implements the arc-standard transition system: parser
// configurations, move legality, the training oracle and the parser features.
//
// A configuration is (i, stack, tree): i is the next unread token, the stack
// holds token indices with the ROOT token 0 at the bottom, and the tree maps
// each token to its head (0 when unattached). Configurations are values. The
// stack and the arc history are persistent lists, so applying a move costs
// O(1) and never disturbs the configuration it started from.
package transition

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned when a move is applied in a configuration that
// does not allow it.
var ErrIllegalMove = errors.New("illegal move")

type stackNode struct {
	token int
	below *stackNode
	depth int
}

func (s *stackNode) push(token int) *stackNode {
	return &stackNode{token: token, below: s, depth: s.size() + 1}
}

func (s *stackNode) size() int {
	if s == nil {
		return 0
	}
	return s.depth
}

type arcNode struct {
	dep, head int
	prev      *arcNode
}

// Configuration is a parser state for a sentence of n tokens, ROOT included.
type Configuration struct {
	I     int
	n     int
	stack *stackNode
	arcs  *arcNode
}

// Initial returns the start configuration for n tokens: nothing read, empty
// stack, no arcs.
func Initial(n int) Configuration {
	return Configuration{n: n}
}

// Len returns the number of tokens, ROOT included.
func (c Configuration) Len() int {
	return c.n
}

// Depth returns the number of tokens on the stack.
func (c Configuration) Depth() int {
	return c.stack.size()
}

// Peek returns the k-th stack element from the top (0 is the top).
func (c Configuration) Peek(k int) (int, bool) {
	s := c.stack
	for ; s != nil && k > 0; k-- {
		s = s.below
	}
	if s == nil {
		return 0, false
	}
	return s.token, true
}

// Stack returns the stack from bottom to top.
func (c Configuration) Stack() []int {
	out := make([]int, c.Depth())
	for s, i := c.stack, len(out)-1; s != nil; s, i = s.below, i-1 {
		out[i] = s.token
	}
	return out
}

// Heads materializes the tree: Heads()[d] is the head of token d, 0 when
// unattached. ROOT's own entry is always 0.
func (c Configuration) Heads() []int {
	heads := make([]int, c.n)
	for a := c.arcs; a != nil; a = a.prev {
		heads[a.dep] = a.head
	}
	return heads
}

// ValidMoves returns the legal moves in the order SHIFT, LEFT-ARC, RIGHT-ARC.
// The beam visits successors in this order, so a tie keeps the SHIFT branch.
// LEFT-ARC needs three stack elements so ROOT never becomes a dependent.
func (c Configuration) ValidMoves() []Move {
	moves := make([]Move, 0, 3)
	for _, m := range []Move{Shift, LeftArc, RightArc} {
		if c.CanApply(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// CanApply reports whether m is legal in c.
func (c Configuration) CanApply(m Move) bool {
	switch m {
	case Shift:
		return c.I < c.n
	case LeftArc:
		return c.Depth() > 2
	case RightArc:
		return c.Depth() > 1
	}
	return false
}

// Terminal reports whether no move is legal: the buffer is empty and only
// ROOT is left on the stack.
func (c Configuration) Terminal() bool {
	return !c.CanApply(Shift) && !c.CanApply(RightArc)
}

// Apply returns the configuration reached by m. c itself is unchanged.
func (c Configuration) Apply(m Move) (Configuration, error) {
	if !c.CanApply(m) {
		return c, fmt.Errorf("%w: %s with i=%d depth=%d", ErrIllegalMove, m, c.I, c.Depth())
	}
	next := c
	switch m {
	case Shift:
		next.stack = c.stack.push(c.I)
		next.I++
	case LeftArc:
		top, second := c.stack, c.stack.below
		next.stack = second.below.push(top.token)
		next.arcs = &arcNode{dep: second.token, head: top.token, prev: c.arcs}
	case RightArc:
		top := c.stack
		next.stack = top.below
		next.arcs = &arcNode{dep: top.token, head: top.below.token, prev: c.arcs}
	}
	return next, nil
}
