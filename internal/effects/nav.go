package effects

// ScrollState is the scroll history the navigation bar depends on.
type ScrollState struct {
	LastOffset float64
}

// NavState is how the navigation bar should look.
type NavState struct {
	Background bool
	Hidden     bool
}

// NavController derives the navigation bar state from scroll offsets.
type NavController struct {
	backgroundAt float64
	hideAt       float64
	State        ScrollState
}

// NewNavController creates a controller starting at offset 0.
func NewNavController(cfg Config) *NavController {
	return &NavController{backgroundAt: cfg.NavBackgroundAt, hideAt: cfg.NavHideAt}
}

// Background reports whether the bar gets its opaque background.
func (n *NavController) Background(current float64) bool {
	return current > n.backgroundAt
}

// Hidden reports whether the bar slides out: only while scrolling down
// past the hide threshold.
func (n *NavController) Hidden(current, last float64) bool {
	return current > last && current > n.hideAt
}

// Update computes the state for current and records it as the last offset.
func (n *NavController) Update(current float64) NavState {
	s := NavState{
		Background: n.Background(current),
		Hidden:     n.Hidden(current, n.State.LastOffset),
	}
	n.State.LastOffset = current
	return s
}
