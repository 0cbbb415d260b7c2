package common

import (
	"math/big"
	"testing"
)

func TestHexToAddressRoundTrip(t *testing.T) {
	in := "0x0000000000000000000000000000000047534b32"
	a := HexToAddress(in)
	if a.Hex() != in {
		t.Fatalf("hex round trip: got %s want %s", a.Hex(), in)
	}
}

func TestIsHexAddress(t *testing.T) {
	cases := []struct {
		s  string
		ok bool
	}{
		{"0x0000000000000000000000000000000047534b32", true},
		{"0000000000000000000000000000000047534b32", true},
		{"0x47534b32", false},
		{"0xzz00000000000000000000000000000047534b32", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsHexAddress(c.s); got != c.ok {
			t.Errorf("IsHexAddress(%q) = %v, want %v", c.s, got, c.ok)
		}
	}
}

func TestHashBigRoundTrip(t *testing.T) {
	v := big.NewInt(1234567890)
	h := BigToHash(v)
	if h.Big().Cmp(v) != 0 {
		t.Fatalf("hash big round trip: got %v want %v", h.Big(), v)
	}
}

func TestSetBytesCropsFromLeft(t *testing.T) {
	long := make([]byte, 40)
	long[0] = 0xff  // must be cropped away
	long[39] = 0x01 // must survive
	h := BytesToHash(long)
	if h[0] == 0xff || h[31] != 0x01 {
		t.Fatalf("unexpected crop result: %x", h)
	}
}

func TestAddressTextCodec(t *testing.T) {
	a := HexToAddress("0x00000000000000000000000000000000deadbeef")
	txt, err := a.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var b Address
	if err := b.UnmarshalText(txt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a != b {
		t.Fatalf("text round trip mismatch: %s != %s", a, b)
	}
	if err := b.UnmarshalText([]byte("0x123")); err == nil {
		t.Fatal("expected error for short address")
	}
}
