package effects

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	Top, Bottom float64
}

// Revealer tracks which elements are waiting to be revealed. An element is
// revealed at most once and is unobserved as soon as that happens.
type Revealer struct {
	threshold    float64
	marginBottom float64
	observed     map[string]bool
	revealed     map[string]bool
}

// NewRevealer creates a Revealer using cfg's threshold and bottom margin.
func NewRevealer(cfg Config) *Revealer {
	return &Revealer{
		threshold:    cfg.RevealThreshold,
		marginBottom: cfg.RevealMarginBottom,
		observed:     make(map[string]bool),
		revealed:     make(map[string]bool),
	}
}

// Observe starts watching id. Already revealed elements are ignored.
func (r *Revealer) Observe(id string) {
	if r.revealed[id] {
		return
	}
	r.observed[id] = true
}

// Intersect reports an intersection change for id with the given visible
// ratio, bounding box and viewport height. It returns true only on the call
// that reveals the element.
func (r *Revealer) Intersect(id string, ratio float64, rect Rect, viewportHeight float64) bool {
	if !r.observed[id] {
		return false
	}
	if ratio < r.threshold || !r.intersects(rect, viewportHeight) {
		return false
	}
	delete(r.observed, id)
	r.revealed[id] = true
	return true
}

func (r *Revealer) intersects(rect Rect, viewportHeight float64) bool {
	bottomEdge := viewportHeight + r.marginBottom
	return rect.Top < bottomEdge && rect.Bottom > 0
}

// Observed reports whether id is still being watched.
func (r *Revealer) Observed(id string) bool { return r.observed[id] }

// Revealed reports whether id has been revealed.
func (r *Revealer) Revealed(id string) bool { return r.revealed[id] }

// Pending returns the number of elements still waiting.
func (r *Revealer) Pending() int { return len(r.observed) }
