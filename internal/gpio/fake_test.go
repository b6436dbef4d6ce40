package gpio

import "testing"

func TestFakeChannelLevels(t *testing.T) {
	f := NewFakeChannel(2, 11, '1', '0', '1')

	want := []bool{true, false, true, false, false}
	for i, w := range want {
		if got := f.ReadLevel(); got != w {
			t.Errorf("read %d: got %v, want %v", i, got, w)
		}
	}
	if f.Reads != len(want) {
		t.Errorf("Reads = %d, want %d", f.Reads, len(want))
	}
}

func TestFakeChannelIdentity(t *testing.T) {
	f := NewFakeChannel(3, 12, '1')
	if f.Line() != 3 {
		t.Errorf("Line = %d, want 3", f.Line())
	}
	if f.Fd() != 12 {
		t.Errorf("Fd = %d, want 12", f.Fd())
	}
}

func TestFakeChannelClose(t *testing.T) {
	f := NewFakeChannel(0, 10)
	if f.Closed {
		t.Error("should not start closed")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}
