// Package render turns a content document into one HTML fragment per page
// region. It does no I/O; writing fragments into a page is done by the
// page package.
package render

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/folio/internal/content"
)

// Region identifies a target element in the page shell by its id.
type Region string

const (
	RegionHeroName       Region = "hero-name"
	RegionHeroRole       Region = "hero-role"
	RegionHeroTagline    Region = "hero-tagline"
	RegionStatement      Region = "statement-text"
	RegionAboutHeading   Region = "about-heading"
	RegionAboutColumns   Region = "about-columns"
	RegionSkills         Region = "skills-grid"
	RegionTimeline       Region = "timeline"
	RegionEducation      Region = "education"
	RegionProjects       Region = "projects"
	RegionContactHeading Region = "contact-heading"
	RegionContactLinks   Region = "contact-links"
)

// Regions lists every region in page order.
var Regions = []Region{
	RegionHeroName, RegionHeroRole, RegionHeroTagline, RegionStatement,
	RegionAboutHeading, RegionAboutColumns, RegionSkills, RegionTimeline,
	RegionEducation, RegionProjects, RegionContactHeading, RegionContactLinks,
}

// Kind says how a fragment is inserted.
type Kind int

const (
	// Markup is parsed as HTML.
	Markup Kind = iota
	// Text is inserted as a text node and never interpreted.
	Text
)

func (k Kind) String() string {
	if k == Text {
		return "text"
	}
	return "markup"
}

// Fragment is the content for one region.
type Fragment struct {
	Region  Region
	Kind    Kind
	Content string
}

// Fragments is an ordered list of region contents.
type Fragments []Fragment

// Get returns the fragment for r.
func (f Fragments) Get(r Region) (Fragment, bool) {
	for _, frag := range f {
		if frag.Region == r {
			return frag, true
		}
	}
	return Fragment{}, false
}

// Options controls project decoration and optional markdown conversion.
type Options struct {
	Accents       []string
	Illustrations []string
	// Markdown, when non-nil, converts trusted free-text fields.
	Markdown *Markdown
}

// DefaultOptions returns the built-in accents and illustrations.
func DefaultOptions() Options {
	return Options{Accents: DefaultAccents, Illustrations: DefaultIllustrations}
}

// Render produces fragments for every section of doc, in page order. When a
// required field is missing it returns the fragments built so far together
// with a *content.FieldError, so the caller can write the partial page.
func Render(doc *content.Document, opts Options) (Fragments, error) {
	if len(opts.Accents) == 0 {
		opts.Accents = DefaultAccents
	}
	if len(opts.Illustrations) == 0 {
		opts.Illustrations = DefaultIllustrations
	}

	r := renderer{opts: opts}
	steps := []func(*content.Document) error{
		r.hero,
		r.statement,
		r.about,
		r.skills,
		r.timeline,
		r.education,
		r.projects,
		r.contact,
	}
	for _, step := range steps {
		if err := step(doc); err != nil {
			return r.out, err
		}
	}
	return r.out, nil
}

// Fallback renders only the identity fields, as used when the content
// document could not be loaded.
func Fallback(doc *content.Document) Fragments {
	return Fragments{
		{Region: RegionHeroName, Kind: Markup, Content: HeroName(doc.FullName())},
		{Region: RegionHeroRole, Kind: Text, Content: doc.Role},
	}
}

// HeroName splits name on whitespace and puts each part on its own line.
func HeroName(name string) string {
	return strings.Join(strings.Fields(name), "<br>")
}

type renderer struct {
	opts Options
	out  Fragments
}

func (r *renderer) emit(region Region, kind Kind, s string) {
	r.out = append(r.out, Fragment{Region: region, Kind: kind, Content: s})
}

// text converts a trusted field through markdown when enabled.
func (r *renderer) text(s string, inline bool) (string, error) {
	if r.opts.Markdown == nil {
		return s, nil
	}
	if inline {
		return r.opts.Markdown.Inline(s)
	}
	return r.opts.Markdown.Block(s)
}

func (r *renderer) hero(d *content.Document) error {
	if d.Name == nil {
		return content.Missing("name")
	}
	r.emit(RegionHeroName, Markup, HeroName(*d.Name))
	r.emit(RegionHeroRole, Text, d.Role)
	if d.Tagline == nil {
		return content.Missing("tagline")
	}
	r.emit(RegionHeroTagline, Markup, strings.ReplaceAll(*d.Tagline, "\n", "<br>"))
	return nil
}

func (r *renderer) statement(d *content.Document) error {
	if d.Statement != "" {
		r.emit(RegionStatement, Text, d.Statement)
	}
	return nil
}

func (r *renderer) about(d *content.Document) error {
	if d.About == nil {
		return content.Missing("about")
	}
	if d.About.Heading == nil {
		return content.Missing("about.heading")
	}
	r.emit(RegionAboutHeading, Markup, FormatHeading(*d.About.Heading))

	if d.About.Columns == nil {
		return content.Missing("about.columns")
	}
	var b strings.Builder
	for _, col := range d.About.Columns {
		body, err := r.text(col, true)
		if err != nil {
			return fmt.Errorf("about column: %w", err)
		}
		fmt.Fprintf(&b, `<div class="about-col"><p>%s</p></div>`, body)
	}
	r.emit(RegionAboutColumns, Markup, b.String())
	return nil
}

func (r *renderer) skills(d *content.Document) error {
	if d.Skills == nil {
		return content.Missing("skills")
	}
	var b strings.Builder
	for _, s := range d.Skills {
		fmt.Fprintf(&b, `<div class="skill-item"><span class="skill-category">%s</span><span class="skill-list">%s</span></div>`,
			s.Category, s.Items)
	}
	r.emit(RegionSkills, Markup, b.String())
	return nil
}

func (r *renderer) timeline(d *content.Document) error {
	if d.Experience == nil {
		return content.Missing("experience")
	}
	var b strings.Builder
	for _, job := range d.Experience {
		desc, err := r.text(job.Description, true)
		if err != nil {
			return fmt.Errorf("timeline description: %w", err)
		}
		fmt.Fprintf(&b, `<div class="timeline-item"><div class="timeline-period">%s</div><div class="timeline-body">`+
			`<h3 class="timeline-title">%s</h3><span class="timeline-org">%s</span><p class="timeline-desc">%s</p></div></div>`,
			job.Period, job.Title, job.Org, desc)
	}
	r.emit(RegionTimeline, Markup, b.String())
	return nil
}

func (r *renderer) education(d *content.Document) error {
	if d.Education == nil {
		return content.Missing("education")
	}
	var b strings.Builder
	b.WriteString(`<div class="education-header">Education</div><div class="education-items">`)
	for _, ed := range d.Education {
		fmt.Fprintf(&b, `<div class="education-item"><span class="education-degree">%s</span><span class="education-school">%s, %s</span></div>`,
			ed.Degree, ed.School, ed.Year)
	}
	b.WriteString(`</div>`)
	r.emit(RegionEducation, Markup, b.String())
	return nil
}

// Accent returns the accent color for the project at index i.
func (o Options) Accent(i int) string {
	accents := o.Accents
	if len(accents) == 0 {
		accents = DefaultAccents
	}
	return accents[i%len(accents)]
}

// Illustration returns the decorative block for the project at index i.
func (o Options) Illustration(i int) string {
	ills := o.Illustrations
	if len(ills) == 0 {
		ills = DefaultIllustrations
	}
	if i < len(ills) {
		return ills[i]
	}
	return ills[0]
}

// ProjectNumber is the 1-based, two-digit label for index i.
func ProjectNumber(i int) string {
	return fmt.Sprintf("%02d", i+1)
}

// Reversed reports whether the project at index i uses the mirrored layout.
func Reversed(i int) bool {
	return i%2 == 1
}

func (r *renderer) projects(d *content.Document) error {
	if d.Projects == nil {
		return content.Missing("projects")
	}
	var b strings.Builder
	for i, p := range d.Projects {
		if p.Tags == nil {
			return content.Missing(fmt.Sprintf("projects[%d].tags", i))
		}
		desc, err := r.text(p.Description, true)
		if err != nil {
			return fmt.Errorf("project %d description: %w", i, err)
		}

		class := "project"
		if Reversed(i) {
			class += " project--reverse"
		}
		fmt.Fprintf(&b, `<article class="%s"><div class="project-image"><div class="project-placeholder" style="--accent: %s;">%s</div></div>`,
			class, r.opts.Accent(i), r.opts.Illustration(i))
		fmt.Fprintf(&b, `<div class="project-info"><span class="project-number">%s</span><h3 class="project-title">%s</h3><p class="project-desc">%s</p><div class="project-tags">`,
			ProjectNumber(i), p.Title, desc)
		for _, tag := range p.Tags {
			fmt.Fprintf(&b, `<span>%s</span>`, tag)
		}
		b.WriteString(`</div></div></article>`)
	}
	r.emit(RegionProjects, Markup, b.String())
	return nil
}

func (r *renderer) contact(d *content.Document) error {
	if d.Contact == nil {
		return content.Missing("contact")
	}
	if d.Contact.Heading == nil {
		return content.Missing("contact.heading")
	}
	r.emit(RegionContactHeading, Markup, FormatHeading(*d.Contact.Heading))

	if d.Contact.Links == nil {
		return content.Missing("contact.links")
	}
	var b strings.Builder
	for _, link := range d.Contact.Links {
		b.WriteString(ContactLink(link))
	}
	r.emit(RegionContactLinks, Markup, b.String())
	return nil
}

// ContactLink renders one contact link. Label and value are escaped as text
// and the url as an attribute; http(s) links open in a new context without
// an opener reference.
func ContactLink(link content.Link) string {
	external := ""
	if IsExternal(link.URL) {
		external = ` target="_blank" rel="noopener noreferrer"`
	}
	return fmt.Sprintf(`<a href="%s" class="contact-link"%s><span class="contact-link-label">%s</span><span class="contact-link-value">%s</span><span class="contact-arrow">&rarr;</span></a>`,
		EscapeAttr(link.URL), external, EscapeText(link.Label), EscapeText(link.Value))
}

// IsExternal reports whether url should open in a new browsing context.
func IsExternal(url string) bool {
	return strings.HasPrefix(url, "http")
}
