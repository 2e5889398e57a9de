package game

// Whole-board set algebra. Every operation works mask by mask across all
// seven masks and returns a new Board.

func (b Board) combine(other Board, op func(x, y uint64) uint64) Board {
	out := Board{
		One: op(b.One, other.One),
		Two: op(b.Two, other.Two),
	}
	for i := range out.Fish {
		out.Fish[i] = op(b.Fish[i], other.Fish[i])
	}
	return out
}

func (b Board) Intersection(other Board) Board {
	return b.combine(other, func(x, y uint64) uint64 { return x & y })
}

func (b Board) Union(other Board) Board {
	return b.combine(other, func(x, y uint64) uint64 { return x | y })
}

func (b Board) Difference(other Board) Board {
	return b.combine(other, func(x, y uint64) uint64 { return x &^ y })
}

func (b Board) ExclusiveOr(other Board) Board {
	return b.combine(other, func(x, y uint64) uint64 { return x ^ y })
}

func (b Board) Implication(other Board) Board {
	return b.combine(other, func(x, y uint64) uint64 { return ^x | y })
}

// Complement flips all 64 bits of every mask.
func (b Board) Complement() Board {
	return b.combine(Board{}, func(x, _ uint64) uint64 { return ^x })
}

func (b Board) Equivalence(other Board) bool {
	return b == other
}

func (b Board) IsEmpty() bool {
	return b == Board{}
}

// Disjoint reports whether no mask of b shares a bit with the same mask of other.
func (b Board) Disjoint(other Board) bool {
	return b.Intersection(other).IsEmpty()
}
