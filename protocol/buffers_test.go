package protocol

import (
	"bytes"
	"testing"
)

func TestScratchOutput(t *testing.T) {
	out := NewScratchOutput()

	out.Output([]byte{1, 2, 3})
	mark := out.CurPosition()
	if mark != 3 {
		t.Fatalf("CurPosition() = %d, want 3", mark)
	}
	out.Output([]byte{4, 5})

	if got := out.DataSince(mark); !bytes.Equal(got, []byte{4, 5}) {
		t.Errorf("DataSince(%d) = %v, want [4 5]", mark, got)
	}
	if got := out.DataSince(10); got != nil {
		t.Errorf("DataSince past end = %v, want nil", got)
	}
	if got := out.Result(); !bytes.Equal(got, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("Result() = %v", got)
	}

	out.Reset()
	if len(out.Result()) != 0 {
		t.Errorf("Result() after Reset = %v, want empty", out.Result())
	}
}

func TestScratchOutputTruncates(t *testing.T) {
	out := NewScratchOutput()
	out.Output(make([]byte, MessageMax-1))
	out.Output([]byte{0xAA, 0xBB, 0xCC})

	if out.CurPosition() != MessageMax {
		t.Fatalf("CurPosition() = %d, want %d", out.CurPosition(), MessageMax)
	}
	if last := out.Result()[MessageMax-1]; last != 0xAA {
		t.Errorf("last byte = 0x%02X, want 0xAA", last)
	}
}
