package crawl

// Budget caps the number of page analyses in one run.
// A single Budget is shared by pointer across every branch of the run.
type Budget struct {
	Count int
	Max   int
}

// Exhausted reports whether no further analyses may start.
func (b *Budget) Exhausted() bool {
	return b.Count >= b.Max
}

// Take consumes one iteration and reports whether one was available.
func (b *Budget) Take() bool {
	if b.Exhausted() {
		return false
	}
	b.Count++
	return true
}
