package format

import (
	"errors"
	"testing"
)

func TestPackUnpack(t *testing.T) {
	for _, size := range []int{0, 16, 32, 4096, 1 << 40} {
		for _, alloc := range []bool{true, false} {
			got := Unpack(Pack(size, alloc))
			if got.Size != size || got.Allocated != alloc {
				t.Fatalf("Pack/Unpack(%d,%v) = %+v", size, alloc, got)
			}
		}
	}
}

func TestNextBlock(t *testing.T) {
	b := make([]byte, 128)
	WriteFrame(b, 120)
	WriteTags(b, FirstBlockOffset, 64, false)
	WriteTags(b, FirstBlockOffset+64, 32, true)

	head, next, err := NextBlock(b, HeadOffset)
	if err != nil {
		t.Fatalf("NextBlock(head): %v", err)
	}
	if !head.Allocated || head.Size != HeadSize || next != FirstBlockOffset {
		t.Fatalf("unexpected head sentinel: %+v next=%d", head, next)
	}

	blk, next, err := NextBlock(b, next)
	if err != nil {
		t.Fatalf("NextBlock: %v", err)
	}
	if blk.Allocated || blk.Size != 64 || blk.Payload() != FirstBlockOffset+TagSize {
		t.Fatalf("unexpected free block: %+v", blk)
	}

	blk, next, err = NextBlock(b, next)
	if err != nil {
		t.Fatalf("NextBlock: %v", err)
	}
	if !blk.Allocated || blk.Size != 32 || next != 120 {
		t.Fatalf("unexpected allocated block: %+v next=%d", blk, next)
	}

	tail, after, err := NextBlock(b, next)
	if err != nil {
		t.Fatalf("NextBlock(tail): %v", err)
	}
	if tail.Size != 0 || !tail.Allocated || after != next {
		t.Fatalf("unexpected tail sentinel: %+v", tail)
	}
}

func TestNextBlockFooterMismatch(t *testing.T) {
	b := make([]byte, 64)
	WriteTags(b, 8, 32, false)
	PutU64(b, FooterOffset(8, 32), Pack(32, true))

	_, _, err := NextBlock(b, 8)
	if !errors.Is(err, ErrBadTag) {
		t.Fatalf("expected ErrBadTag, got %v", err)
	}
}

func TestNextBlockTruncated(t *testing.T) {
	b := make([]byte, 32)
	PutU64(b, 8, Pack(64, false))

	_, _, err := NextBlock(b, 8)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if _, _, err := NextBlock(b, 4); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned, got %v", err)
	}
}

func TestHasMagic(t *testing.T) {
	b := make([]byte, PrologueSize)
	if HasMagic(b) {
		t.Fatalf("zeroed buffer should not carry magic")
	}
	WriteFrame(b, FirstBlockOffset)
	if !HasMagic(b) {
		t.Fatalf("expected magic after WriteFrame")
	}
	if HasMagic(b[:4]) {
		t.Fatalf("short buffer should not carry magic")
	}
}
