package render

import (
	"fmt"
	"strings"
)

// DefaultAccents are the CSS colors cycled across project cards.
var DefaultAccents = []string{"var(--olive)", "var(--mustard)", "var(--teak)"}

// DefaultIllustrations are the decorative blocks shown beside projects, by
// index. Projects past the end of the list reuse the first one.
var DefaultIllustrations = []string{
	pathogenIllustration(),
	capsidIllustration(),
	pollenIllustration(),
}

// bacterium flinching from approaching stimuli
func pathogenIllustration() string {
	var b strings.Builder
	b.WriteString(`<div class="bio-illustration bio-pathogen">`)
	for i := 1; i <= 4; i++ {
		fmt.Fprintf(&b, `<div class="stimulus stim-%d"></div>`, i)
	}
	for i := 1; i <= 2; i++ {
		fmt.Fprintf(&b, `<div class="stim-ring ring-%d"></div>`, i)
	}
	b.WriteString(`<div class="bacterium">`)
	b.WriteString(`<div class="bact-membrane"></div><div class="bact-cytoplasm"></div><div class="bact-nucleus"></div>`)
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&b, `<div class="bact-flagellum flag-%d"></div>`, i)
	}
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&b, `<div class="bact-pilus pilus-%d"></div>`, i)
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

// capsid packaging code fragments
func capsidIllustration() string {
	packed := []string{"ATGC", "0110", "seq"}
	left := []string{"def classify(seq):", "SPIKE_P681R", "embedding = encode(s)", "score: 0.97"}
	right := []string{"return model.predict(x)", "variant: B.1.617.2", "loss = cross_entropy(y)", "ACE2 binding: HIGH"}

	var b strings.Builder
	b.WriteString(`<div class="bio-illustration bio-capsid"><div class="capsid-shell">`)
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&b, `<div class="capsid-facet facet-%d"></div>`, i)
	}
	b.WriteString(`<div class="capsid-inner"></div>`)
	for i, p := range packed {
		fmt.Fprintf(&b, `<div class="capsid-packed packed-%d">%s</div>`, i+1, p)
	}
	b.WriteString(`</div><div class="capsid-glow"></div>`)
	n := 1
	for _, s := range left {
		fmt.Fprintf(&b, `<div class="code-fly fly-l fly-%d">%s</div>`, n, s)
		n++
	}
	for _, s := range right {
		fmt.Fprintf(&b, `<div class="code-fly fly-r fly-%d">%s</div>`, n, s)
		n++
	}
	b.WriteString(`</div>`)
	return b.String()
}

// particles drifting like pollen
func pollenIllustration() string {
	var b strings.Builder
	b.WriteString(`<div class="bio-illustration bio-pollen">`)
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&b, `<div class="air-current current-%d"></div>`, i)
	}
	for v := 1; v <= 5; v++ {
		fmt.Fprintf(&b, `<div class="pollen-virus pv-%d"><div class="pv-body"></div>`, v)
		for s := 1; s <= 8; s++ {
			fmt.Fprintf(&b, `<div class="pv-spike ps-%d"></div>`, s)
		}
		b.WriteString(`</div>`)
	}
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, `<div class="pollen-dust pd-%d"></div>`, i)
	}
	b.WriteString(`</div>`)
	return b.String()
}
