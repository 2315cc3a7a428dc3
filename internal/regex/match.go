package regex

// MatchResult is the outcome of applying a node at a given offset.
// Rest is the offset right after the consumed bytes, or the starting offset
// when Ok is false.
type MatchResult struct {
	Ok   bool
	Rest int
}

func matchNode(n Node, text []byte, pos int) (int, bool) {
	if n == nil || pos < 0 || pos > len(text) {
		return pos, false
	}

	return n.match(text, pos)
}

func (n *CharacterNode) match(text []byte, pos int) (int, bool) {
	if pos >= len(text) || text[pos] != n.Char {
		return pos, false
	}

	return pos + 1, true
}

func (n *ConcatNode) match(text []byte, pos int) (int, bool) {
	mid, ok := matchNode(n.Left, text, pos)
	if !ok {
		return pos, false
	}

	end, ok := matchNode(n.Right, text, mid)
	if !ok {
		return pos, false
	}

	return end, true
}

// Alternatives are tried left first; the first success is final.
func (n *UnionNode) match(text []byte, pos int) (int, bool) {
	if end, ok := matchNode(n.Left, text, pos); ok {
		return end, true
	}

	if end, ok := matchNode(n.Right, text, pos); ok {
		return end, true
	}

	return pos, false
}

// Repetition is greedy and never gives back a repetition: "a*a" cannot
// accept "aa". A repetition that consumes nothing ends the loop.
func (n *StarNode) match(text []byte, pos int) (int, bool) {
	return repeat(n.Inner, text, pos), true
}

func (n *PlusNode) match(text []byte, pos int) (int, bool) {
	next, ok := matchNode(n.Inner, text, pos)
	if !ok {
		return pos, false
	}

	return repeat(n.Inner, text, next), true
}

func repeat(inner Node, text []byte, pos int) int {
	for {
		next, ok := matchNode(inner, text, pos)
		if !ok || next == pos {
			return pos
		}

		pos = next
	}
}

func (n *ClassNode) match(text []byte, pos int) (int, bool) {
	if pos >= len(text) || !InClass(n.Class, text[pos]) {
		return pos, false
	}

	return pos + 1, true
}

// Match returns the longest prefix of text matched by node, as a sub-slice of
// text. The result is empty when node is nil or does not match.
func Match(text []byte, node Node) []byte {
	end, ok := matchNode(node, text, 0)
	if !ok {
		return text[:0]
	}

	return text[:end]
}

// Accept reports whether node matches the whole of text.
func Accept(text []byte, node Node) bool {
	end, ok := matchNode(node, text, 0)

	return ok && end == len(text)
}

// MatchAt applies node at text[pos:].
func MatchAt(text []byte, pos int, node Node) MatchResult {
	end, ok := matchNode(node, text, pos)

	return MatchResult{Ok: ok, Rest: end}
}
