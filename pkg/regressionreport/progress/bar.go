// Package progress provides observers of the reconciliation engine.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reconcile"
)

const (
	DefaultBarWidth = 20

	doneIcon    = "#"
	pendingIcon = "-"
)

// Bar draws one progress line per operation, redrawing it in place after
// every processed build and ending it once all builds were processed.
type Bar struct {
	lock  sync.Mutex
	out   io.Writer
	width int
	label string
}

func NewBar(out io.Writer, width int) *Bar {
	if width <= 0 {
		width = DefaultBarWidth
	}
	return &Bar{out: out, width: width}
}

// NewTerminalBar returns a bar on f when f is a terminal and nil otherwise,
// so progress never ends up in redirected output.
func NewTerminalBar(f *os.File) *Bar {
	if !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return NewBar(f, DefaultBarWidth)
}

// WithLabel returns a bar drawing on the same output under another label.
// Without a label, the job of the processed build is shown.
func (b *Bar) WithLabel(label string) *Bar {
	return &Bar{out: b.out, width: b.width, label: label}
}

func (b *Bar) BuildProcessed(p reconcile.Progress) {
	b.lock.Lock()
	defer b.lock.Unlock()

	label := b.label
	if label == "" {
		label = p.Job
	}
	_, _ = fmt.Fprintf(b.out, "\r%s", Render(label, p.Completed, p.Total, b.width))
	if p.Completed >= p.Total {
		_, _ = fmt.Fprintln(b.out)
	}
}

// Render formats a progress line like "job> [#####---------------] 25.00%".
func Render(label string, completed, total, width int) string {
	fraction := 1.0
	if total > 0 {
		fraction = float64(completed) / float64(total)
	}
	if fraction > 1 {
		fraction = 1
	}
	done := int(fraction * float64(width))
	return fmt.Sprintf("%s> [%s%s] %.2f%%", label, strings.Repeat(doneIcon, done), strings.Repeat(pendingIcon, width-done), fraction*100)
}
