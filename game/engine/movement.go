package engine

// Slide resolves a full ricochet slide from pos in the given direction. The
// robot moves cell by cell until the next step would leave the grid or cross
// a wall. The returned path always starts with pos and ends with the final
// position; a slide that is blocked immediately returns (pos, [pos]).
//
// The step count is bounded by max(rows, cols)-1 because every committed
// step strictly reduces the distance to the boundary ahead.
func (b *Board) Slide(pos Position, dir Direction) (Position, []Position) {
	path := []Position{pos}
	cur := pos
	for {
		next := cur.Step(dir)
		if !b.InBounds(next) || b.HasWallBetween(cur, next) {
			return cur, path
		}
		cur = next
		path = append(path, cur)
	}
}

// CollectAlong scans a slide path (excluding its starting cell) and returns
// the updated item set. Amber and violet are collected on crossing; the goal
// is collected only if both collectibles are already present at the point in
// the scan where the goal cell is crossed. A single slide can therefore
// collect several items, including the goal, when it crosses them in order.
func (b *Board) CollectAlong(path []Position, items ItemSet) ItemSet {
	for _, p := range path[1:] {
		switch p {
		case b.amber:
			items = items.With(ItemAmber)
		case b.violet:
			items = items.With(ItemViolet)
		case b.goal:
			if items.Has(ItemAmber) && items.Has(ItemViolet) {
				items = items.With(ItemGoal)
			}
		}
	}
	return items
}
