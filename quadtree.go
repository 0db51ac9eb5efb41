package main

// Entity kinds stored in the spatial index
const (
	KindCar     = byte('c')
	KindPowerUp = byte('u')
)

// SpatialEntry is one indexed entity: its bounding box, what kind of
// entity it is, and an integer handle into the owning manager's slice.
// Handles are only valid within the tick the index was built in.
type SpatialEntry struct {
	Box    Box
	Kind   byte
	Handle int
}

// Quadtree is a region quadtree over axis-aligned boxes, rebuilt every
// tick as a broad-phase collision index.
//
// Insertion and query recurse into every child whose bounds overlap the
// box, so an entry straddling a split line lands in multiple leaves and
// can appear more than once in query results. Callers de-duplicate by
// handle. Entries that do not overlap the root bounds are dropped.
type Quadtree struct {
	bounds   Box
	capacity int
	depth    int
	entries  []SpatialEntry
	divided  bool
	nw       *Quadtree
	ne       *Quadtree
	sw       *Quadtree
	se       *Quadtree
}

// NewQuadtree creates a quadtree covering bounds with the given leaf capacity
func NewQuadtree(bounds Box, capacity int) *Quadtree {
	return &Quadtree{bounds: bounds, capacity: capacity}
}

// Insert adds an entry to the tree. Entries outside the tree bounds are
// silently ignored.
func (q *Quadtree) Insert(e SpatialEntry) {
	if !q.bounds.Overlaps(e.Box) {
		return
	}
	if !q.divided {
		// At max depth the node holds everything locally regardless of
		// capacity, so coincident boxes cannot force endless splits.
		if len(q.entries) < q.capacity || q.depth >= QuadMaxDepth {
			q.entries = append(q.entries, e)
			return
		}
		q.subdivide()
	}
	q.nw.Insert(e)
	q.ne.Insert(e)
	q.sw.Insert(e)
	q.se.Insert(e)
}

func (q *Quadtree) subdivide() {
	hw := q.bounds.W / 2
	hh := q.bounds.H / 2
	d := q.depth + 1
	q.nw = &Quadtree{bounds: Box{q.bounds.X, q.bounds.Y, hw, hh}, capacity: q.capacity, depth: d}
	q.ne = &Quadtree{bounds: Box{q.bounds.X + hw, q.bounds.Y, hw, hh}, capacity: q.capacity, depth: d}
	q.sw = &Quadtree{bounds: Box{q.bounds.X, q.bounds.Y + hh, hw, hh}, capacity: q.capacity, depth: d}
	q.se = &Quadtree{bounds: Box{q.bounds.X + hw, q.bounds.Y + hh, hw, hh}, capacity: q.capacity, depth: d}
	q.divided = true
}

// Query returns all entries whose boxes overlap region. Results may
// contain duplicate handles for entries spanning node boundaries.
func (q *Quadtree) Query(region Box) []SpatialEntry {
	return q.QueryBuf(region, nil)
}

// QueryBuf appends results to buf and returns the extended slice,
// avoiding per-call allocation in the tick loop
func (q *Quadtree) QueryBuf(region Box, buf []SpatialEntry) []SpatialEntry {
	if !q.bounds.Overlaps(region) {
		return buf
	}
	for _, e := range q.entries {
		if e.Box.Overlaps(region) {
			buf = append(buf, e)
		}
	}
	if q.divided {
		buf = q.nw.QueryBuf(region, buf)
		buf = q.ne.QueryBuf(region, buf)
		buf = q.sw.QueryBuf(region, buf)
		buf = q.se.QueryBuf(region, buf)
	}
	return buf
}

// Clear removes all entries and tears down children, keeping the root's
// allocated capacity for the next rebuild
func (q *Quadtree) Clear() {
	q.entries = q.entries[:0]
	q.divided = false
	q.nw, q.ne, q.sw, q.se = nil, nil, nil, nil
}
