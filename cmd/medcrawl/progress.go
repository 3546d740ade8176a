package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/medcrawl"
	"github.com/fwojciec/medcrawl/crawl"
	"github.com/mattn/go-isatty"
)

// progress reports crawl events on w. Per-key outcomes are printed as
// lines; on a terminal a spinner also shows the current key and link.
type progress struct {
	w       io.Writer
	spinner *spinner.Spinner
}

func newProgress(w io.Writer) *progress {
	p := &progress{w: w}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p.spinner = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(f))
		p.spinner.Start()
	}
	return p
}

// Handle is a crawl.ProgressFunc.
func (p *progress) Handle(e crawl.ProgressEvent) {
	key := strings.ToUpper(e.Key)
	switch e.Type {
	case crawl.KeyStarted:
		p.status(fmt.Sprintf(" [%d/%d] %s: %s", e.KeyIndex+1, e.KeyTotal, key, e.URL))
	case crawl.LinkExtracted:
		p.status(fmt.Sprintf(" %s: %d records, %s", key, e.Records, e.URL))
	case crawl.LinkSkipped:
		p.status(fmt.Sprintf(" %s: skipped %s (%s)", key, e.URL, e.Kind))
	case crawl.KeyFinished:
		p.println(fmt.Sprintf("[%s] %d records", key, e.Records))
	case crawl.KeyFailed:
		p.println(fmt.Sprintf("[%s] failed: %s", key, medcrawl.ErrorMessage(e.Error)))
	}
}

// Stop halts the spinner. It is safe to call more than once.
func (p *progress) Stop() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}

func (p *progress) status(msg string) {
	if p.spinner == nil {
		return
	}
	p.spinner.Lock()
	p.spinner.Suffix = msg
	p.spinner.Unlock()
}

func (p *progress) println(line string) {
	if p.spinner == nil {
		fmt.Fprintln(p.w, line)
		return
	}
	p.spinner.Stop()
	fmt.Fprintln(p.w, line)
	p.spinner.Start()
}
