package engine

// DefaultMaxMoves bounds the breadth-first search depth when the caller does
// not supply a budget. The reachable state space at reference scale is
// rows×cols×8, so the bound exists to make termination obvious, not to keep
// runtime in check.
const DefaultMaxMoves = 30

// searchState is the BFS node key: robot position plus the frozen set of
// collected items. Move depth is deliberately not part of the key; FIFO
// level order guarantees the first visit happens at minimal depth.
type searchState struct {
	pos   Position
	items ItemSet
}

// parentLink records how a state was first reached, for solution
// reconstruction by walking the from/to map backwards.
type parentLink struct {
	prev searchState
	dir  Direction
}

// Solve returns the optimal number of moves needed to collect amber and
// violet and then reach the goal, starting from the board's start position.
// ok is false when no solution exists within maxMoves; an unsolvable board
// is a normal result, not an error. maxMoves <= 0 selects DefaultMaxMoves.
func Solve(b *Board, maxMoves int) (moves int, ok bool) {
	dirs, ok := SolveDirections(b, maxMoves)
	if !ok {
		return 0, false
	}
	return len(dirs), true
}

// SolveDirections is Solve but also reconstructs one optimal move sequence,
// for callers that display the solution rather than just its length.
func SolveDirections(b *Board, maxMoves int) ([]Direction, bool) {
	return solveFrom(b, b.start, 0, maxMoves)
}

// solveFrom runs the BFS from an arbitrary (position, collected) pair so the
// runtime engine can ask for the optimal continuation of a game in progress.
func solveFrom(b *Board, pos Position, items ItemSet, maxMoves int) ([]Direction, bool) {
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}

	type node struct {
		st    searchState
		depth int
	}

	start := searchState{pos: pos, items: items}
	queue := []node{{st: start}}
	parents := map[searchState]parentLink{}
	seen := map[searchState]struct{}{start: {}}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		// Win check at dequeue: the first dequeued winning state is at
		// minimal depth.
		if n.st.items.Has(ItemGoal) {
			return reconstruct(parents, start, n.st), true
		}
		if n.depth >= maxMoves {
			continue
		}

		for _, dir := range AllDirections {
			final, path := b.Slide(n.st.pos, dir)
			if final == n.st.pos {
				continue
			}
			next := searchState{pos: final, items: b.CollectAlong(path, n.st.items)}
			if _, visited := seen[next]; visited {
				continue
			}
			seen[next] = struct{}{}
			parents[next] = parentLink{prev: n.st, dir: dir}
			queue = append(queue, node{st: next, depth: n.depth + 1})
		}
	}
	return nil, false
}

// reconstruct walks the parent links from the winning state back to the
// start and returns the move sequence in forward order.
func reconstruct(parents map[searchState]parentLink, start, win searchState) []Direction {
	dirs := []Direction{}
	for st := win; st != start; {
		link := parents[st]
		dirs = append(dirs, link.dir)
		st = link.prev
	}
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}
