// Package notify translates button presses into POSIX signals delivered
// to the companion display process. The companion is a plain signal
// handler with no reply path, so delivery is one-way and fire-and-forget.
package notify

import (
	"fmt"
	"syscall"
)

// Kind identifies which logical button notification to deliver.
type Kind int

const (
	// KindShift advances the companion display to the next page (K1).
	KindShift Kind = iota
	// KindSelect activates the current display entry (K2).
	KindSelect
	// KindStatus asks the companion for its status/confirm action (K3).
	KindStatus
)

// String returns the kind name for logs and telemetry.
func (k Kind) String() string {
	switch k {
	case KindShift:
		return "shift"
	case KindSelect:
		return "select"
	case KindStatus:
		return "status"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Signal returns the POSIX signal carrying this notification. The
// three-signal protocol is fixed by the companion's handler set.
func (k Kind) Signal() syscall.Signal {
	switch k {
	case KindShift:
		return syscall.SIGUSR1
	case KindSelect:
		return syscall.SIGUSR2
	case KindStatus:
		return syscall.SIGALRM
	}
	panic(fmt.Sprintf("notify: no signal for %v", k))
}

// SignalName returns the conventional name of the kind's signal for
// logs and telemetry.
func (k Kind) SignalName() string {
	switch k {
	case KindShift:
		return "SIGUSR1"
	case KindSelect:
		return "SIGUSR2"
	case KindStatus:
		return "SIGALRM"
	}
	return k.Signal().String()
}

// Translator is the fixed mapping from GPIO line number to notification
// kind, built once at startup from the three configured lines.
type Translator struct {
	byLine map[int]Kind
}

// NewTranslator builds the mapping for the three button lines.
func NewTranslator(lineShift, lineSelect, lineStatus int) *Translator {
	return &Translator{byLine: map[int]Kind{
		lineShift:  KindShift,
		lineSelect: KindSelect,
		lineStatus: KindStatus,
	}}
}

// KindFor maps a line number to its notification kind. Only registered
// lines are ever dispatched, so an unknown line is an internal
// consistency fault, not a recoverable condition.
func (t *Translator) KindFor(line int) Kind {
	k, ok := t.byLine[line]
	if !ok {
		panic(fmt.Sprintf("notify: line %d has no notification kind", line))
	}
	return k
}
