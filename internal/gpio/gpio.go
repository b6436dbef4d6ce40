// Package gpio manages button input lines through the kernel sysfs GPIO
// interface, with hardware abstraction for testing.
// The sysfs backend is the primary one; a character-device backend is
// available for kernels that no longer carry the sysfs tree.
package gpio

// Edge selects which transitions generate readiness events on a line.
type Edge string

const (
	EdgeRising  Edge = "rising"
	EdgeFalling Edge = "falling"
	EdgeBoth    Edge = "both"
)

// ParseEdge validates an edge mode string from the command line.
func ParseEdge(s string) (Edge, bool) {
	switch Edge(s) {
	case EdgeRising, EdgeFalling, EdgeBoth:
		return Edge(s), true
	}
	return "", false
}

// Default button lines for the NanoHat OLED hat (K1, K2, K3).
const (
	DefaultLineK1 = 0
	DefaultLineK2 = 2
	DefaultLineK3 = 3
)

// ActiveLevel is the byte a sysfs value file reports for logic high.
const ActiveLevel = '1'

// Channel is one armed button line.
type Channel interface {
	// Line returns the kernel GPIO line number.
	Line() int

	// ReadLevel rewinds the value stream and reads one byte, reporting
	// whether it holds the active level. Short or failed reads mean "no
	// actionable level" and are not an error. The rewind-then-read is
	// also what re-arms the kernel edge notification for the line.
	ReadLevel() bool

	// Fd exposes the value stream descriptor for readiness polling.
	Fd() int

	// Close releases the value stream.
	Close() error
}
