// Package progress reports build steps to the terminal, to CI logs or to a
// structured logger.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives the steps of a site build.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter picks a reporter for the current process: line output under
// CI, a progress bar otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// TerminalReporter draws a progress bar that is cleared when the build ends.
type TerminalReporter struct {
	Out io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	out := r.Out
	if out == nil {
		out = os.Stderr
	}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Building site"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(message)
	_ = r.bar.Set(current)
}

func (r *TerminalReporter) Finish() {
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	r.bar = nil
}

// CIReporter writes one line per step and the total time at the end.
type CIReporter struct {
	Out io.Writer
	// Now is the clock; nil means time.Now.
	Now func() time.Time

	total int
	start time.Time
}

func (r *CIReporter) Start(total int) {
	r.total = total
	r.start = r.now()
	fmt.Fprintf(r.out(), "Building site in %d steps\n", total)
}

func (r *CIReporter) Update(current int, message string) {
	fmt.Fprintf(r.out(), "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.out(), "Site built in %s\n", r.now().Sub(r.start).Round(time.Millisecond))
}

func (r *CIReporter) out() io.Writer {
	if r.Out == nil {
		return os.Stderr
	}
	return r.Out
}

func (r *CIReporter) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// LogReporter sends build steps to a logger at debug level. It suits
// background rebuilds where a progress bar would garble server logs.
type LogReporter struct {
	Logger *slog.Logger

	total int
	start time.Time
}

func (r *LogReporter) Start(total int) {
	r.total = total
	r.start = time.Now()
}

func (r *LogReporter) Update(current int, message string) {
	r.logger().Debug("build step", "step", current, "of", r.total, "stage", message)
}

func (r *LogReporter) Finish() {
	r.logger().Debug("build finished", "elapsed", time.Since(r.start))
}

func (r *LogReporter) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int)          {}
func (Nop) Update(int, string) {}
func (Nop) Finish()            {}
