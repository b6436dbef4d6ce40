//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevWatcher delivers button presses from the GPIO character device.
// Newer kernels drop the sysfs GPIO tree entirely; this backend covers
// them. Edge detection happens in the kernel, so there is no value file
// to rewind and no userspace multiplexer.
type CdevWatcher struct {
	chip    *gpiocdev.Chip
	lines   []*gpiocdev.Line
	presses chan int
}

// NewCdevWatcher requests the given lines as inputs with edge detection
// on the named chip (e.g. "gpiochip0").
func NewCdevWatcher(chipName string, lines []int, edge Edge) (*CdevWatcher, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	w := &CdevWatcher{chip: chip, presses: make(chan int, 16)}

	edgeOpt := gpiocdev.WithRisingEdge
	switch edge {
	case EdgeFalling:
		edgeOpt = gpiocdev.WithFallingEdge
	case EdgeBoth:
		edgeOpt = gpiocdev.WithBothEdges
	}

	for _, offset := range lines {
		line, err := chip.RequestLine(offset, gpiocdev.AsInput, edgeOpt,
			gpiocdev.WithEventHandler(w.handleEvent))
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("request line %d: %w", offset, err)
		}
		w.lines = append(w.lines, line)
	}

	return w, nil
}

func (w *CdevWatcher) handleEvent(ev gpiocdev.LineEvent) {
	if ev.Type != gpiocdev.LineEventRisingEdge {
		return
	}
	// Drop the press rather than stall the event handler.
	select {
	case w.presses <- ev.Offset:
	default:
	}
}

// Presses delivers the line number of each detected press.
func (w *CdevWatcher) Presses() <-chan int { return w.presses }

// Close releases the requested lines and the chip.
func (w *CdevWatcher) Close() error {
	var firstErr error
	for _, line := range w.lines {
		if err := line.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close line: %w", err)
		}
	}
	if err := w.chip.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close chip: %w", err)
	}
	return firstErr
}
