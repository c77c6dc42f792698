// Package effects decorates a rendered page for scroll reveals, staggered
// transitions, navigation state, magnetic hover and hero parallax.
//
// The decoration that can be decided at build time (reveal classes and
// stagger delays) is written into the page directly. The pointer and scroll
// driven parts run in the browser from the script produced by Script; their
// arithmetic lives here as plain functions so it can be tested.
package effects

import (
	"math"
	"strconv"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/page"
)

// RevealClass is added to every element that fades in on scroll.
const RevealClass = "reveal"

// VisibleClass is added by the runtime once an element has been revealed.
const VisibleClass = "is-visible"

// RevealSelectors are the classes whose elements are revealed on scroll.
var RevealSelectors = []string{
	"statement-section",
	"section-grid",
	"project",
	"contact-link",
	"about-decorative",
	"timeline-item",
	"skill-item",
	"education",
}

// Config holds the tunable thresholds.
type Config struct {
	RevealThreshold float64
	// RevealMarginBottom shrinks (negative) or grows the viewport's bottom
	// edge, in pixels, when testing for a reveal.
	RevealMarginBottom float64

	// Stagger delays in seconds per element index.
	StaggerProject  float64
	StaggerTimeline float64
	StaggerSkill    float64

	NavBackgroundAt float64
	NavHideAt       float64

	MagneticStrength float64
	ParallaxStrength float64

	// HeroSelector is the CSS selector of the parallax target.
	HeroSelector string
	// LiveReload makes the script reconnect to the dev server's reload socket.
	LiveReload bool
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		RevealThreshold:    0.12,
		RevealMarginBottom: -50,
		StaggerProject:     0.1,
		StaggerTimeline:    0.1,
		StaggerSkill:       0.08,
		NavBackgroundAt:    80,
		NavHideAt:          400,
		MagneticStrength:   4,
		ParallaxStrength:   20,
		HeroSelector:       ".hero-visual",
	}
}

// Result counts what Apply touched.
type Result struct {
	Revealed  int
	Staggered int
}

// Apply marks reveal targets and writes stagger delays into p. It is safe
// to call on a page that only received the fallback fragments.
func Apply(p *page.Page, cfg Config) Result {
	var res Result
	seen := make(map[*html.Node]bool)
	for _, class := range RevealSelectors {
		for _, n := range p.ByClass(class) {
			if seen[n] {
				continue
			}
			seen[n] = true
			page.AddClass(n, RevealClass)
			res.Revealed++
		}
	}

	stagger := []struct {
		class string
		step  float64
	}{
		{"project", cfg.StaggerProject},
		{"timeline-item", cfg.StaggerTimeline},
		{"skill-item", cfg.StaggerSkill},
	}
	for _, s := range stagger {
		for i, n := range p.ByClass(s.class) {
			page.SetStyle(n, "transition-delay", Delay(i, s.step))
			res.Staggered++
		}
	}
	return res
}

// Delay formats the transition delay for the element at index i, rounded
// to the millisecond.
func Delay(i int, step float64) string {
	d := math.Round(float64(i)*step*1000) / 1000
	return strconv.FormatFloat(d, 'f', -1, 64) + "s"
}

// MagneticOffset is the vertical pull, in pixels, of a hovered element
// toward the pointer. It ranges over [-strength/2, strength/2].
func MagneticOffset(pointerY, rectTop, rectHeight, strength float64) float64 {
	if rectHeight <= 0 {
		return 0
	}
	return ((pointerY-rectTop)/rectHeight - 0.5) * strength
}

// ParallaxOffset is the hero visual's translation for a pointer position,
// proportional to the pointer's distance from the viewport center.
func ParallaxOffset(pointerX, pointerY, width, height, strength float64) (x, y float64) {
	if width > 0 {
		x = (pointerX/width - 0.5) * strength
	}
	if height > 0 {
		y = (pointerY/height - 0.5) * strength
	}
	return x, y
}
