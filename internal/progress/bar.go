package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

const (
	barWidth       = 20
	renderInterval = 100 * time.Millisecond
)

// Bar renders a single-line transfer bar to a terminal.
// When more bytes arrive than the announced total, the total grows instead of
// the bar failing.
type Bar struct {
	mu  sync.Mutex
	out io.Writer
	bar *progressbar.ProgressBar
}

// New creates a Bar writing to out.
func New(out io.Writer) *Bar {
	return &Bar{out: out}
}

// Start resets the bar for a transfer of roughly total bytes.
func (b *Bar) Start(total int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(barWidth),
		progressbar.OptionThrottle(renderInterval),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Update records the cumulative byte count.
func (b *Bar) Update(written int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil {
		return nil
	}
	if written > b.bar.GetMax64() {
		b.bar.ChangeMax64(written + 1)
	}
	return b.bar.Set64(written)
}

// Finish draws the final state and ends the line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	fmt.Fprintln(b.out)
}

// Total returns the current ceiling.
func (b *Bar) Total() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil {
		return 0
	}
	return b.bar.GetMax64()
}
