package gpio

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

// DefaultRoot is the kernel sysfs GPIO control tree.
const DefaultRoot = "/sys/class/gpio"

// SysfsChannel is a button line exported through the sysfs GPIO tree.
type SysfsChannel struct {
	root string
	line int
	f    *os.File
}

// Configure exports the line, sets it as an input with the given edge
// mode, and opens its value file for non-blocking reads.
//
// The export, direction, and edge writes are best-effort: a line left
// exported by a previous run makes them fail harmlessly, so failures
// are logged and ignored. A failed open of the value file is returned
// to the caller — nothing downstream can work without it.
func Configure(root string, line int, edge Edge) (*SysfsChannel, error) {
	num := strconv.Itoa(line)
	dir := filepath.Join(root, "gpio"+num)

	if err := writeControl(filepath.Join(root, "export"), num); err != nil {
		log.Printf("gpio: export line %d: %v", line, err)
	}
	if err := writeControl(filepath.Join(dir, "direction"), "in"); err != nil {
		log.Printf("gpio: set direction for line %d: %v", line, err)
	}
	if err := writeControl(filepath.Join(dir, "edge"), string(edge)); err != nil {
		log.Printf("gpio: set edge for line %d: %v", line, err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "value"), os.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open value for line %d: %w", line, err)
	}

	return &SysfsChannel{root: root, line: line, f: f}, nil
}

// Line returns the kernel GPIO line number.
func (c *SysfsChannel) Line() int { return c.line }

// Fd exposes the value stream descriptor for readiness polling.
func (c *SysfsChannel) Fd() int { return int(c.f.Fd()) }

// ReadLevel rewinds the value stream and reads one byte.
// Returns true only for a clean read of the active level. The rewind is
// mandatory: without it the kernel considers the previous read position
// consumed and produces no further edge notifications for the line.
func (c *SysfsChannel) ReadLevel() bool {
	if _, err := c.f.Seek(0, io.SeekStart); err != nil {
		log.Printf("gpio: rewind line %d: %v", c.line, err)
		return false
	}
	var b [1]byte
	n, err := c.f.Read(b[:])
	if err != nil || n == 0 {
		return false
	}
	return b[0] == ActiveLevel
}

// Close releases the value stream. The line stays exported; Release
// undoes that separately.
func (c *SysfsChannel) Close() error {
	return c.f.Close()
}

// Release unexports the line. Best effort, used only on controlled
// shutdown.
func Release(root string, line int) {
	if err := writeControl(filepath.Join(root, "unexport"), strconv.Itoa(line)); err != nil {
		log.Printf("gpio: unexport line %d: %v", line, err)
	}
}

func writeControl(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	_, werr := f.WriteString(value + "\n")
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}
