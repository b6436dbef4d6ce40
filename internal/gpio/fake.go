package gpio

// FakeChannel is a test double for a button line. Levels are consumed
// one per ReadLevel call; once exhausted, reads report no level, which
// matches a line that produced no further edges.
type FakeChannel struct {
	// LineNum is the GPIO line number reported by Line.
	LineNum int

	// FdNum is the descriptor reported by Fd.
	FdNum int

	// Levels contains scripted value bytes, consumed per ReadLevel.
	Levels []byte

	// Reads counts ReadLevel calls (each implies a rewind).
	Reads int

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeChannel creates a FakeChannel with the given scripted levels.
func NewFakeChannel(line, fd int, levels ...byte) *FakeChannel {
	return &FakeChannel{LineNum: line, FdNum: fd, Levels: levels}
}

// Line returns the configured line number.
func (f *FakeChannel) Line() int { return f.LineNum }

// Fd returns the configured descriptor.
func (f *FakeChannel) Fd() int { return f.FdNum }

// ReadLevel consumes the next scripted level.
func (f *FakeChannel) ReadLevel() bool {
	f.Reads++
	if f.index >= len(f.Levels) {
		return false
	}
	b := f.Levels[f.index]
	f.index++
	return b == ActiveLevel
}

// Close marks the channel as closed.
func (f *FakeChannel) Close() error {
	f.Closed = true
	return nil
}
