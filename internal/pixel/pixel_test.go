package pixel

import "testing"

func TestFormatString(t *testing.T) {
	if got := XRGB8888.String(); got != "XR24" {
		t.Fatalf("expected XR24, got %q", got)
	}
	if got := ABGR8888.String(); got != "AB24" {
		t.Fatalf("expected AB24, got %q", got)
	}
	// 0x01 is not printable, so the code falls back to hex.
	if got := Format(0x01020304).String(); got != "0x01020304" {
		t.Fatalf("expected hex fallback, got %q", got)
	}
}

func TestShmCode(t *testing.T) {
	cases := []struct {
		f    Format
		want uint32
	}{
		{ARGB8888, 0},
		{XRGB8888, 1},
		{XBGR8888, uint32(XBGR8888)},
		{ABGR8888, uint32(ABGR8888)},
	}
	for _, c := range cases {
		got, err := c.f.ShmCode()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", c.f, err)
		}
		if got != c.want {
			t.Fatalf("%s: expected shm code %d, got %d", c.f, c.want, got)
		}
	}
	if _, err := Format(0x12345678).ShmCode(); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestBytesPerPixel(t *testing.T) {
	if got := ARGB8888.BytesPerPixel(); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := Format(0).BytesPerPixel(); got != 0 {
		t.Fatalf("expected 0 for unknown format, got %d", got)
	}
}

func TestConvertRowIdentity(t *testing.T) {
	// Two ARGB8888 pixels pass through byte for byte.
	src := []byte{0x10, 0x20, 0x30, 0x40, 0x50, 0x60, 0x70, 0x80}
	dst := make([]byte, len(src))
	if err := ConvertRowARGB32(dst, src, 2, ARGB8888); err != nil {
		t.Fatalf("convert: %v", err)
	}
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("byte %d: expected %#x, got %#x", i, src[i], dst[i])
		}
	}
}

func TestConvertRowXRGBForcesAlpha(t *testing.T) {
	src := []byte{0x10, 0x20, 0x30, 0x00}
	dst := make([]byte, 4)
	if err := ConvertRowARGB32(dst, src, 1, XRGB8888); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if dst[0] != 0x10 || dst[1] != 0x20 || dst[2] != 0x30 {
		t.Fatalf("color channels changed: % x", dst)
	}
	if dst[3] != 0xff {
		t.Fatalf("expected opaque alpha, got %#x", dst[3])
	}
}

func TestConvertRowChannelSwap(t *testing.T) {
	// ABGR8888 memory order is R, G, B, A; ARGB32 is B, G, R, A.
	src := []byte{0xaa, 0xbb, 0xcc, 0xdd}
	dst := make([]byte, 4)
	if err := ConvertRowARGB32(dst, src, 1, ABGR8888); err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []byte{0xcc, 0xbb, 0xaa, 0xdd}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("byte %d: expected %#x, got %#x", i, want[i], dst[i])
		}
	}
}

func TestConvertRowRejectsShortBuffers(t *testing.T) {
	if err := ConvertRowARGB32(make([]byte, 4), make([]byte, 4), 2, ARGB8888); err == nil {
		t.Fatalf("expected error for short buffers")
	}
	if err := ConvertRowARGB32(make([]byte, 4), make([]byte, 4), 1, Format(7)); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
