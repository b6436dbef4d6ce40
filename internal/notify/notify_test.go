package notify

import (
	"syscall"
	"testing"
)

func TestKindSignals(t *testing.T) {
	tests := []struct {
		kind Kind
		want syscall.Signal
	}{
		{KindShift, syscall.SIGUSR1},
		{KindSelect, syscall.SIGUSR2},
		{KindStatus, syscall.SIGALRM},
	}
	for _, tt := range tests {
		if got := tt.kind.Signal(); got != tt.want {
			t.Errorf("%v.Signal() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestTranslatorMapping(t *testing.T) {
	tr := NewTranslator(0, 2, 3)

	tests := []struct {
		line int
		want Kind
	}{
		{0, KindShift},
		{2, KindSelect},
		{3, KindStatus},
	}
	for _, tt := range tests {
		if got := tr.KindFor(tt.line); got != tt.want {
			t.Errorf("KindFor(%d) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestTranslatorUnknownLinePanics(t *testing.T) {
	tr := NewTranslator(0, 2, 3)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unregistered line")
		}
	}()
	tr.KindFor(17)
}
