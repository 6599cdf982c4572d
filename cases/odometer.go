package cases

// Odometer walks the multi-index of a Space in canonical, case-major order.
//
// The last digit turns fastest. An Odometer is not safe for concurrent use;
// create one per goroutine.
type Odometer struct {
	space *Space
	digit []int
	flat  int
	done  bool
}

// NewOdometer returns an odometer positioned at the first case-tuple.
func NewOdometer(s *Space) *Odometer {
	return &Odometer{
		space: s,
		digit: make([]int, len(s.cases)),
	}
}

// Seek positions the odometer at flat index i. Seeking past the end marks the
// odometer as done.
func (o *Odometer) Seek(i int) {
	if i < 0 || i >= o.space.size {
		o.flat = i
		o.done = true

		return
	}

	o.flat = i
	o.done = false
	for d := len(o.digit) - 1; d >= 0; d-- {
		n := o.space.cases[d].Len()
		o.digit[d] = i % n
		i /= n
	}
}

// Next advances to the following case-tuple and reports whether one exists.
func (o *Odometer) Next() bool {
	if o.done {
		return false
	}

	o.flat++
	for d := len(o.digit) - 1; d >= 0; d-- {
		o.digit[d]++
		if o.digit[d] < o.space.cases[d].Len() {
			return true
		}
		o.digit[d] = 0
	}
	o.done = true

	return false
}

// Done reports whether the odometer has run past the last case-tuple.
func (o *Odometer) Done() bool {
	return o.done
}

// Flat returns the current flat index.
func (o *Odometer) Flat() int {
	return o.flat
}

// Index returns the current multi-index. The returned slice is owned by the
// odometer and changes on Next.
func (o *Odometer) Index() []int {
	return o.digit
}

// Tuple returns a newly allocated tuple for the current position.
func (o *Odometer) Tuple() Tuple {
	t := make(Tuple, len(o.digit))
	for d, i := range o.digit {
		t[d] = o.space.cases[d].values[i]
	}

	return t
}
