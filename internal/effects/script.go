package effects

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"text/template"
)

// ReloadPath is where the dev server accepts live-reload sockets.
const ReloadPath = "/ws/reload"

//go:embed effects.js.tmpl
var scriptSource string

var scriptTmpl = template.Must(template.New("effects.js").Funcs(template.FuncMap{
	"num": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
}).Parse(scriptSource))

type scriptData struct {
	Config
	RevealClass  string
	VisibleClass string
	ReloadPath   string
}

// Script renders the browser runtime for cfg.
func Script(cfg Config) ([]byte, error) {
	if cfg.HeroSelector == "" {
		cfg.HeroSelector = DefaultConfig().HeroSelector
	}
	var buf bytes.Buffer
	err := scriptTmpl.Execute(&buf, scriptData{
		Config:       cfg,
		RevealClass:  RevealClass,
		VisibleClass: VisibleClass,
		ReloadPath:   ReloadPath,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering effects script: %w", err)
	}
	return buf.Bytes(), nil
}
