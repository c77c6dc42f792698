package page

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed shell/index.html
var defaultShell []byte

//go:embed shell/style.css
var defaultStyle []byte

// DefaultShell returns the built-in page shell.
func DefaultShell() []byte { return defaultShell }

// DefaultStyle returns the stylesheet the built-in shell links to.
func DefaultStyle() []byte { return defaultStyle }

// Load parses the shell at path, or the built-in shell when path is empty.
func Load(path string) (*Page, error) {
	if path == "" {
		return ParseString(string(defaultShell))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shell %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}
