package digest

// startWindow holds the admissible peptide start positions, oldest first.
//
// After every push the window retires its oldest entries so that its size
// never exceeds miscleavages+1+bonus, where bonus is 1 while the oldest start
// is 0 and methionine cleavage is active. Retirement drops 1+bonus entries,
// so losing the initiator methionine never costs a missed cleavage.
type startWindow struct {
	buf        []int
	head       int
	size       int
	limit      int
	methionine bool
}

// newStartWindow returns a window seeded with start 0.
func newStartWindow(miscleavages int, methionine bool) *startWindow {
	if miscleavages < 0 {
		miscleavages = 0
	}
	// size peaks at miscleavages+3 between a push and its retirement
	w := &startWindow{
		buf:        make([]int, miscleavages+3),
		limit:      miscleavages + 1,
		methionine: methionine,
	}
	w.buf[0] = 0
	w.size = 1
	return w
}

// Len returns the number of tracked starts.
func (w *startWindow) Len() int { return w.size }

// At returns the k-th oldest start.
func (w *startWindow) At(k int) int {
	return w.buf[(w.head+k)%len(w.buf)]
}

// Oldest returns the oldest tracked start. The window must not be empty.
func (w *startWindow) Oldest() int { return w.buf[w.head] }

// bonus is 1 while the synthetic start 0 is still open under methionine cleavage.
func (w *startWindow) bonus() int {
	if w.methionine && w.size > 0 && w.Oldest() == 0 {
		return 1
	}
	return 0
}

// Push appends pos as the newest start and retires the oldest entries when
// the window exceeds its miscleavage budget.
func (w *startWindow) Push(pos int) {
	if w.size == len(w.buf) {
		w.grow()
	}
	w.buf[(w.head+w.size)%len(w.buf)] = pos
	w.size++

	bonus := w.bonus()
	if w.size > w.limit+bonus {
		w.retire(1 + bonus)
	}
}

func (w *startWindow) retire(n int) {
	n = min(n, w.size)
	w.head = (w.head + n) % len(w.buf)
	w.size -= n
}

func (w *startWindow) grow() {
	buf := make([]int, 2*len(w.buf))
	for k := 0; k < w.size; k++ {
		buf[k] = w.At(k)
	}
	w.buf = buf
	w.head = 0
}
