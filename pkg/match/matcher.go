// Package match implements the NodePatternMatcher of spec.md §4.1: scanners
// describe the shape of a construct's children as a small pattern —
// "a KDoc, then optionally a blank line, then a Name, then zero or more
// Fields, ..." — and the matcher walks the construct's children against it,
// handing back the matched pieces so the scanner can turn them into
// fmttoken.Token runs.
//
// The matcher is a genuine NFA: patterns compile to an arena of states
// joined by consuming edges (test a child, advance one position) and
// epsilon edges (take for free); matching is priority-ordered depth-first
// search over epsilon-closures, exactly the technique regexp engines use to
// implement backtracking alternation and greedy/frugal quantifiers.
package match

import "ktfmt/internal/lang/ast"

// edge is a consuming transition: if test accepts the node at the current
// cursor, advance to state `to` and, when label is non-empty, record a
// PathStep under that label.
type edge struct {
	test  func(ast.Node) bool
	label string
	to    int
}

type state struct {
	trans []edge
	eps   []int // epsilon targets, in priority order
	// hasGap marks this as a zero-width "possible whitespace"
	// epsilon transition: it never consumes a node, but records the blank
	// line count observed between the previously consumed node and the one
	// at the current cursor.
	gapLabel string
	gapTo    int
	hasGap   bool
	// isEnd marks a state that only accepts at the end of input (the
	// Terminal sentinel).
	isEnd bool
}

// Pattern is a compiled (or still-composable) NFA fragment: a start state
// and the set of "dangling" output states still to be wired to whatever
// comes next.
type Pattern struct {
	arena *arena
	start int
	outs  []int
}

type arena struct{ states []*state }

func (a *arena) new() int {
	a.states = append(a.states, &state{})
	return len(a.states) - 1
}

// PathStep is one matched piece of input: Label identifies which builder
// step produced it, Node is the consumed child (nil for a possibleWhitespace
// step), and Gap is the blank-line count a possibleWhitespace step observed.
type PathStep struct {
	Label string
	Node  ast.Node
	Gap   int
}

func newArena() *arena { return &arena{} }

// Predicate matches exactly one child satisfying test; NodeOfType and
// AnyNode are the two common instances of it.
func Predicate(label string, test func(ast.Node) bool) Pattern {
	a := newArena()
	s0, s1 := a.new(), a.new()
	a.states[s0].trans = append(a.states[s0].trans, edge{test: test, label: label, to: s1})
	return Pattern{arena: a, start: s0, outs: []int{s1}}
}

// NodeOfType matches exactly one child whose Kind is one of kinds.
func NodeOfType(label string, kinds ...ast.NodeKind) Pattern {
	set := make(map[ast.NodeKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return Predicate(label, func(n ast.Node) bool { return set[n.Kind()] })
}

// NodeNotOfType matches exactly one child whose Kind is none of kinds; used
// to bound a greedy repetition that would otherwise swallow a later,
// differently-kinded element (e.g. a call's trailing lambda block).
func NodeNotOfType(label string, kinds ...ast.NodeKind) Pattern {
	set := make(map[ast.NodeKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return Predicate(label, func(n ast.Node) bool { return !set[n.Kind()] })
}

// AnyNode matches exactly one child of any kind (but not the Terminal
// sentinel at end of input).
func AnyNode(label string) Pattern {
	return Predicate(label, func(ast.Node) bool { return true })
}

// PossibleWhitespace consumes nothing, but records the blank-line gap
// between the previously matched node and the node at the cursor (0 if
// adjacent or at a boundary). Used to decide whether source blank lines
// should be preserved as a double ForcedBreak.
func PossibleWhitespace(label string) Pattern {
	a := newArena()
	s0, s1 := a.new(), a.new()
	a.states[s0].hasGap = true
	a.states[s0].gapLabel = label
	a.states[s0].gapTo = s1
	return Pattern{arena: a, start: s0, outs: []int{s1}}
}

// merge copies b's states into a's arena, returning the offset to add to any
// of b's state indices to find them in a.
func merge(a *arena, b *arena) int {
	offset := len(a.states)
	for _, st := range b.states {
		shifted := &state{isEnd: st.isEnd, hasGap: st.hasGap, gapLabel: st.gapLabel}
		for _, e := range st.trans {
			shifted.trans = append(shifted.trans, edge{test: e.test, label: e.label, to: e.to + offset})
		}
		for _, e := range st.eps {
			shifted.eps = append(shifted.eps, e+offset)
		}
		if st.hasGap {
			shifted.gapTo = st.gapTo + offset
		}
		a.states = append(a.states, shifted)
	}
	return offset
}

// AndThen sequences a then b: every dangling output of a gets an epsilon
// edge into b's start.
func AndThen(a, b Pattern) Pattern {
	offset := merge(a.arena, b.arena)
	bStart := b.start + offset
	for _, out := range a.outs {
		a.arena.states[out].eps = append(a.arena.states[out].eps, bStart)
	}
	shiftedOuts := make([]int, len(b.outs))
	for i, o := range b.outs {
		shiftedOuts[i] = o + offset
	}
	return Pattern{arena: a.arena, start: a.start, outs: shiftedOuts}
}

// Either tries each alternative in order (first listed wins ties), exactly
// like ordered-choice regex alternation.
func Either(first Pattern, rest ...Pattern) Pattern {
	root := first.arena
	s0 := root.new()
	root.states[s0].eps = append(root.states[s0].eps, first.start)
	outs := append([]int(nil), first.outs...)
	for _, p := range rest {
		offset := merge(root, p.arena)
		root.states[s0].eps = append(root.states[s0].eps, p.start+offset)
		for _, o := range p.outs {
			outs = append(outs, o+offset)
		}
	}
	return Pattern{arena: root, start: s0, outs: outs}
}

func quantify(p Pattern, min, max int, frugal bool) Pattern {
	// General-purpose: min required repeats, then up to (max-min) optional
	// ones (max<0 means unbounded), looping back to p.start each time.
	a := p.arena
	s0 := a.new()
	sEnd := a.new()

	cur := s0
	for i := 0; i < min; i++ {
		offset := merge(a, cloneArena(p).arena)
		start := p.start + offset
		a.states[cur].eps = append(a.states[cur].eps, start)
		mid := a.new()
		for _, o := range p.outs {
			a.states[o+offset].eps = append(a.states[o+offset].eps, mid)
		}
		cur = mid
	}

	if max < 0 {
		// zero-or-more / one-or-more tail: loop.
		offset := merge(a, cloneArena(p).arena)
		start := p.start + offset
		loopBack := a.new()
		for _, o := range p.outs {
			a.states[o+offset].eps = append(a.states[o+offset].eps, loopBack)
		}
		if frugal {
			a.states[cur].eps = append(a.states[cur].eps, sEnd, start)
			a.states[loopBack].eps = append(a.states[loopBack].eps, sEnd, start)
		} else {
			a.states[cur].eps = append(a.states[cur].eps, start, sEnd)
			a.states[loopBack].eps = append(a.states[loopBack].eps, start, sEnd)
		}
	} else {
		optional := max - min
		for i := 0; i < optional; i++ {
			offset := merge(a, cloneArena(p).arena)
			start := p.start + offset
			mid := a.new()
			for _, o := range p.outs {
				a.states[o+offset].eps = append(a.states[o+offset].eps, mid)
			}
			if frugal {
				a.states[cur].eps = append(a.states[cur].eps, sEnd, start)
			} else {
				a.states[cur].eps = append(a.states[cur].eps, start, sEnd)
			}
			cur = mid
		}
		a.states[cur].eps = append(a.states[cur].eps, sEnd)
	}

	return Pattern{arena: a, start: s0, outs: []int{sEnd}}
}

// cloneArena returns an independent copy of p's arena so repeated embedding
// (quantifiers splice the same sub-pattern in multiple times) doesn't alias
// state mutations across copies.
func cloneArena(p Pattern) Pattern {
	a := &arena{}
	offset := merge(a, p.arena)
	outs := make([]int, len(p.outs))
	for i, o := range p.outs {
		outs[i] = o + offset
	}
	return Pattern{arena: a, start: p.start + offset, outs: outs}
}

func ZeroOrOne(p Pattern) Pattern       { return quantify(p, 0, 1, false) }
func ZeroOrOneFrugal(p Pattern) Pattern { return quantify(p, 0, 1, true) }
func ZeroOrMore(p Pattern) Pattern      { return quantify(p, 0, -1, false) }
func ZeroOrMoreFrugal(p Pattern) Pattern { return quantify(p, 0, -1, true) }
func OneOrMore(p Pattern) Pattern       { return quantify(p, 1, -1, false) }
func OneOrMoreFrugal(p Pattern) Pattern { return quantify(p, 1, -1, true) }

// ExactlyOne is the identity quantifier: it exists so callers can write
// exactlyOne(either(...)) symmetrically with the other quantifiers, making a
// pattern's cardinality explicit at every step rather than implicit by
// omission.
func ExactlyOne(p Pattern) Pattern { return p }

// End requires the cursor to have reached the Terminal sentinel (no more
// children left unconsumed).
func End() Pattern {
	a := newArena()
	s0 := a.new()
	a.states[s0].isEnd = true
	return Pattern{arena: a, start: s0, outs: nil}
}

// input pads children with a single Terminal-kind sentinel so End() and
// AnyNode's "not at end" check have something concrete to test against.
type terminalNode struct{}

func (terminalNode) Kind() ast.NodeKind { return ast.Terminal }
func (terminalNode) Text() string       { return "" }
func (terminalNode) Children() []ast.Node { return nil }
func (terminalNode) GetPos() ast.Pos    { return ast.Pos{} }
func (terminalNode) SetPos(ast.Pos)     {}

// Match runs the compiled pattern p against children (which must not itself
// contain a Terminal node) and returns the first accepting path found by a
// priority-ordered depth-first walk, or ok=false if no path reaches an
// accepting End() state having consumed every child.
func Match(p Pattern, children []ast.Node) (steps []PathStep, ok bool) {
	input := append(append([]ast.Node(nil), children...), terminalNode{})
	m := &matcher{arena: p.arena, input: input}
	var path []PathStep
	if m.search(p.start, 0, &path) {
		return path, true
	}
	return nil, false
}

type matcher struct {
	arena *arena
	input []ast.Node
}

// search performs the ε-closure/backtracking walk: from state s with the
// cursor at position pos, try every reachable transition in priority order,
// recursing and unwinding path on failure exactly like a regex engine's
// backtracking alternation.
func (m *matcher) search(s int, pos int, path *[]PathStep) bool {
	st := m.arena.states[s]

	if st.isEnd {
		return pos == len(m.input)-1 // every real child consumed, only the sentinel left
	}

	if st.hasGap {
		gap := 0
		if pos > 0 && pos < len(m.input) {
			gap = blankLineGap(m.input[pos-1], m.input[pos])
		}
		mark := len(*path)
		if st.gapLabel != "" {
			*path = append(*path, PathStep{Label: st.gapLabel, Gap: gap})
		}
		if m.search(st.gapTo, pos, path) {
			return true
		}
		*path = (*path)[:mark]
		return false
	}

	for _, e := range st.trans {
		if pos >= len(m.input) {
			continue
		}
		n := m.input[pos]
		if n.Kind() == ast.Terminal {
			continue // consuming edges never match the sentinel
		}
		if !e.test(n) {
			continue
		}
		mark := len(*path)
		if e.label != "" {
			*path = append(*path, PathStep{Label: e.label, Node: n})
		}
		if m.search(e.to, pos+1, path) {
			return true
		}
		*path = (*path)[:mark]
	}

	for _, eps := range st.eps {
		if m.search(eps, pos, path) {
			return true
		}
	}

	return false
}

// blankLineGap reports how many fully blank source lines separate a and b,
// based on their recorded positions (spec.md §4.1's basis for deciding
// whether a preserved blank line should survive formatting).
func blankLineGap(a, b ast.Node) int {
	al, bl := a.GetPos().Line, b.GetPos().Line
	if bl <= al+1 {
		return 0
	}
	return int(bl - al - 1)
}
