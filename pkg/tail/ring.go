package tail

// unset marks a ring slot that has never been written. Newline offsets are
// always >= 0, so the sentinel cannot collide with a real offset.
const unset int64 = -1

// newlineRing is a fixed-capacity circular record of the offsets of the most
// recently seen newlines. With capacity n+1, once the ring has wrapped the
// slot at the write index holds the (n+1)-th-from-last newline: the boundary
// exactly n lines back from the end of the file.
type newlineRing struct {
	offsets []int64
	index   int
}

func newNewlineRing(capacity int) *newlineRing {
	offsets := make([]int64, capacity)
	for i := range offsets {
		offsets[i] = unset
	}
	return &newlineRing{offsets: offsets}
}

// record stores a newline offset at the write index and advances the index.
// Offsets must be recorded in strictly increasing order.
func (r *newlineRing) record(offset int64) {
	r.offsets[r.index] = offset
	r.index = (r.index + 1) % len(r.offsets)
}

// oldest returns the offset that the next record call would overwrite, i.e.
// the oldest retained one. ok is false while that slot has never been
// written.
func (r *newlineRing) oldest() (offset int64, ok bool) {
	v := r.offsets[r.index]
	if v == unset {
		return 0, false
	}
	return v, true
}
