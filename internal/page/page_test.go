package page

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/render"
)

func defaultPage(t *testing.T) *Page {
	t.Helper()
	p, err := Load("")
	require.NoError(t, err)
	return p
}

func TestDefaultShellHasEveryRegion(t *testing.T) {
	p := defaultPage(t)
	for _, r := range render.Regions {
		assert.NotNil(t, p.ByID(string(r)), "shell is missing #%s", r)
	}
	assert.Len(t, p.ByClass("nav"), 1)
	assert.Len(t, p.ByClass("hero-visual"), 1)
}

func TestSetHTMLReplacesChildren(t *testing.T) {
	p := defaultPage(t)

	require.NoError(t, p.SetHTML("about-columns", `<div class="about-col"><p>one</p></div>`))
	require.NoError(t, p.SetHTML("about-columns", `<div class="about-col"><p>two</p></div>`))

	got, err := p.InnerHTML("about-columns")
	require.NoError(t, err)
	assert.Equal(t, `<div class="about-col"><p>two</p></div>`, got)
}

func TestSetTextIsLiteral(t *testing.T) {
	p := defaultPage(t)
	require.NoError(t, p.SetText("hero-role", "<b>not bold</b>"))

	got, err := p.InnerHTML("hero-role")
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;not bold&lt;/b&gt;", got)

	text, err := p.TextContent("hero-role")
	require.NoError(t, err)
	assert.Equal(t, "<b>not bold</b>", text)
}

func TestMissingTarget(t *testing.T) {
	p, err := ParseString(`<html><body><h1 id="hero-name"></h1></body></html>`)
	require.NoError(t, err)

	err = p.SetHTML("projects", "<article></article>")
	assert.True(t, errors.Is(err, ErrTargetNotFound))

	err = p.Apply(render.Fragments{
		{Region: render.RegionHeroName, Kind: render.Markup, Content: "A<br>B"},
		{Region: render.RegionHeroRole, Kind: render.Text, Content: "role"},
	})
	assert.True(t, errors.Is(err, ErrTargetNotFound))

	got, _ := p.InnerHTML("hero-name")
	assert.Equal(t, "A<br/>B", got, "writes before the missing target are kept")
}

func TestApplyFullRender(t *testing.T) {
	doc := &content.Document{
		Name:      content.String("Grace Hopper"),
		Role:      "Rear admiral",
		Tagline:   content.String("Compilers"),
		Statement: "It's easier to ask forgiveness",
		About:     &content.About{Heading: content.String("About *me*"), Columns: []string{"COBOL"}},
		Skills:    []content.Skill{{Category: "Languages", Items: "FLOW-MATIC"}},
		Experience: []content.Job{
			{Period: "1944", Title: "Programmer", Org: "Harvard", Description: "Mark I"},
		},
		Education: []content.Education{{Degree: "PhD", School: "Yale", Year: "1934"}},
		Projects:  []content.Project{{Title: "A-0", Description: "First compiler", Tags: []string{}}},
		Contact: &content.Contact{
			Heading: content.String("Say *hi*"),
			Links:   []content.Link{{Label: "Mail", Value: "grace@example.com", URL: "mailto:grace@example.com"}},
		},
	}
	frags, err := render.Render(doc, render.DefaultOptions())
	require.NoError(t, err)

	p := defaultPage(t)
	require.NoError(t, p.Apply(frags))

	heading, _ := p.InnerHTML("about-heading")
	assert.Equal(t, "About <em>me</em>", heading)
	assert.Len(t, p.ByClass("project"), 1)
	assert.Len(t, p.ByClass("contact-link"), 1)
}

func TestFallbackLeavesOtherRegionsEmpty(t *testing.T) {
	p := defaultPage(t)
	require.NoError(t, p.Apply(render.Fallback(content.Fallback("Jane Doe", "Engineer"))))

	name, _ := p.InnerHTML("hero-name")
	assert.Equal(t, "Jane<br/>Doe", name)
	role, _ := p.TextContent("hero-role")
	assert.Equal(t, "Engineer", role)

	for _, id := range []string{"hero-tagline", "about-columns", "projects", "contact-links"} {
		got, err := p.InnerHTML(id)
		require.NoError(t, err)
		assert.Empty(t, got, "#%s should be empty", id)
	}
}

func TestClassAndStyleHelpers(t *testing.T) {
	p, err := ParseString(`<div id="x" class="project" style="--accent: red;"></div>`)
	require.NoError(t, err)
	n := p.ByID("x")

	AddClass(n, "reveal")
	AddClass(n, "reveal")
	assert.Equal(t, "project reveal", Attr(n, "class"))
	assert.True(t, HasClass(n, "reveal"))

	SetStyle(n, "transition-delay", "0.1s")
	SetStyle(n, "transition-delay", "0.2s")
	assert.Equal(t, "--accent: red; transition-delay: 0.2s;", Attr(n, "style"))
	assert.Equal(t, "0.2s", Style(n, "transition-delay"))
	assert.Equal(t, "red", Style(n, "--accent"))
}

func TestVersionAssets(t *testing.T) {
	p := defaultPage(t)
	p.VersionAssets("abc", "style.css", "effects.js")
	out := p.String()
	assert.Contains(t, out, `href="style.css?v=abc"`)
	assert.Contains(t, out, `src="effects.js?v=abc"`)

	p.EnsureScript("effects.js")
	assert.Equal(t, 1, strings.Count(p.String(), "effects.js"))
}

func TestEnsureScriptAppends(t *testing.T) {
	p, err := ParseString(`<html><body><p>hi</p></body></html>`)
	require.NoError(t, err)
	p.EnsureScript("effects.js")
	assert.Contains(t, p.String(), `<script src="effects.js" defer=""></script>`)
}

func TestLoadCustomShell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.html")
	require.NoError(t, os.WriteFile(path, []byte(`<html><body><h1 id="hero-name">old</h1></body></html>`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, p.SetHTML("hero-name", "new"))
	got, _ := p.InnerHTML("hero-name")
	assert.Equal(t, "new", got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.html"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
