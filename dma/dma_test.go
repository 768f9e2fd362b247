package dma

import (
	"encoding/binary"
	"reflect"
	"testing"
)

func TestNewBufferZeroFilled(t *testing.T) {
	cases := []struct {
		size int
		f    SampleFormat
	}{
		{16, SampleFormat{BitsPerSample: 8, Channels: 1}},
		{16, SampleFormat{BitsPerSample: 16, Channels: 2, Interleaved: true}},
		{24, SampleFormat{BitsPerSample: 12, Channels: 1}},
		{32, SampleFormat{BitsPerSample: 32, Channels: 2, Interleaved: true}},
	}
	for _, tc := range cases {
		b, err := NewBuffer(tc.size, tc.f)
		if err != nil {
			t.Errorf("NewBuffer(%d, %+v): %v", tc.size, tc.f, err)
			continue
		}
		if b.Size() != tc.size {
			t.Errorf("Size() = %d, want %d", b.Size(), tc.size)
		}
		chans, err := b.Decode()
		if err != nil {
			t.Errorf("Decode of a fresh buffer: %v", err)
			continue
		}
		want := 1
		if tc.f.Interleaved {
			want = tc.f.Channels
		}
		if len(chans) != want {
			t.Errorf("Decode returned %d sequences, want %d", len(chans), want)
		}
		for ci, ch := range chans {
			rv := reflect.ValueOf(ch)
			for i := 0; i < rv.Len(); i++ {
				if rv.Index(i).Uint() != 0 {
					t.Errorf("channel %d sample %d of a zeroed buffer is %d", ci, i, rv.Index(i).Uint())
					break
				}
			}
		}
	}
}

func TestAllocationErrors(t *testing.T) {
	cases := []struct {
		size int
		f    SampleFormat
	}{
		{0, SampleFormat{BitsPerSample: 8, Channels: 1}},
		{-8, SampleFormat{BitsPerSample: 8, Channels: 1}},
		{3, SampleFormat{BitsPerSample: 16, Channels: 1}},
		{10, SampleFormat{BitsPerSample: 16, Channels: 2, Interleaved: true}},
		{16, SampleFormat{BitsPerSample: 13, Channels: 1}},
		{16, SampleFormat{BitsPerSample: 8, Channels: 0}},
		{12, SampleFormat{BitsPerSample: 12, Channels: 2, Interleaved: false}},
	}
	for _, tc := range cases {
		_, err := NewBuffer(tc.size, tc.f)
		if err == nil {
			t.Errorf("NewBuffer(%d, %+v) should have failed", tc.size, tc.f)
			continue
		}
		if _, ok := err.(*AllocationError); !ok {
			t.Errorf("NewBuffer(%d, %+v) returned %T, want *AllocationError", tc.size, tc.f, err)
		}
	}
}

func TestDecodeFormatError(t *testing.T) {
	// 2 bytes passes the allocation unit check for one channel of packed
	// 12-bit data but does not hold a whole 3-byte packed pair
	b, err := NewBuffer(2, SampleFormat{BitsPerSample: 12, Channels: 1})
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	_, err = b.Decode()
	if err == nil {
		t.Fatal("Decode of a partial sample group should have failed")
	}
	if _, ok := err.(*FormatError); !ok {
		t.Errorf("Decode returned %T, want *FormatError", err)
	}
}

func TestRoundTrip16(t *testing.T) {
	f := SampleFormat{BitsPerSample: 16, Channels: 1}
	b, err := NewBuffer(8, f)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	pattern := []uint16{0x0102, 0xFFFE, 0x8000, 0x0000}
	raw := b.Bytes()
	for i, s := range pattern {
		binary.LittleEndian.PutUint16(raw[2*i:], s)
	}
	chans, err := b.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := chans[0].([]uint16)
	if !reflect.DeepEqual(got, pattern) {
		t.Errorf("Decode = %v, want %v", got, pattern)
	}
}

func TestRoundTrip8(t *testing.T) {
	f := SampleFormat{BitsPerSample: 8, Channels: 1}
	b, err := NewBuffer(4, f)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	pattern := []uint8{0xDE, 0xAD, 0xBE, 0xEF}
	copy(b.Bytes(), pattern)
	chans, err := b.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(chans[0].([]uint8), pattern) {
		t.Errorf("Decode = %v, want %v", chans[0], pattern)
	}
}

func TestRoundTrip32(t *testing.T) {
	f := SampleFormat{BitsPerSample: 32, Channels: 1}
	b, err := NewBuffer(8, f)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	pattern := []uint32{0x01020304, 0xCAFEBABE}
	raw := b.Bytes()
	for i, s := range pattern {
		binary.LittleEndian.PutUint32(raw[4*i:], s)
	}
	chans, err := b.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(chans[0].([]uint32), pattern) {
		t.Errorf("Decode = %v, want %v", chans[0], pattern)
	}
}

func TestUnpack12(t *testing.T) {
	b, err := NewBuffer(6, SampleFormat{BitsPerSample: 12, Channels: 1})
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	copy(b.Bytes(), []byte{0x12, 0x34, 0x56, 0xFF, 0xFF, 0xFF})
	chans, err := b.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := chans[0].([]uint16)
	want := []uint16{0x412, 0x563, 0xFFF, 0xFFF}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %#v, want %#v", got, want)
	}
}

func TestDeinterleave(t *testing.T) {
	f := SampleFormat{BitsPerSample: 16, Channels: 2, Interleaved: true}
	b, err := NewBuffer(12, f)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	// a0 b0 a1 b1 a2 b2
	seq := []uint16{10, 20, 11, 21, 12, 22}
	raw := b.Bytes()
	for i, s := range seq {
		binary.LittleEndian.PutUint16(raw[2*i:], s)
	}
	chans, err := b.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(chans) != 2 {
		t.Fatalf("Decode returned %d sequences, want 2", len(chans))
	}
	wantA := []uint16{10, 11, 12}
	wantB := []uint16{20, 21, 22}
	if !reflect.DeepEqual(chans[0].([]uint16), wantA) {
		t.Errorf("channel 0 = %v, want %v", chans[0], wantA)
	}
	if !reflect.DeepEqual(chans[1].([]uint16), wantB) {
		t.Errorf("channel 1 = %v, want %v", chans[1], wantB)
	}
}

func TestDeinterleave12Bit(t *testing.T) {
	f := SampleFormat{BitsPerSample: 12, Channels: 2, Interleaved: true}
	b, err := NewBuffer(12, f)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	// four packed pairs: a0 b0 a1 b1 a2 b2 a3 b3
	// a = 0x100-series, b = 0x200-series
	samples := []uint16{0x100, 0x200, 0x101, 0x201, 0x102, 0x202, 0x103, 0x203}
	raw := b.Bytes()
	for i := 0; i+1 < len(samples); i += 2 {
		s0, s1 := samples[i], samples[i+1]
		raw[i/2*3] = byte(s0)
		raw[i/2*3+1] = byte(s0>>8) | byte(s1)<<4
		raw[i/2*3+2] = byte(s1 >> 4)
	}
	chans, err := b.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	wantA := []uint16{0x100, 0x101, 0x102, 0x103}
	wantB := []uint16{0x200, 0x201, 0x202, 0x203}
	if !reflect.DeepEqual(chans[0].([]uint16), wantA) {
		t.Errorf("channel 0 = %#v, want %#v", chans[0], wantA)
	}
	if !reflect.DeepEqual(chans[1].([]uint16), wantB) {
		t.Errorf("channel 1 = %#v, want %#v", chans[1], wantB)
	}
}

func TestResetZeroes(t *testing.T) {
	f := SampleFormat{BitsPerSample: 16, Channels: 1}
	b, err := NewBuffer(8, f)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	raw := b.Bytes()
	for i := range raw {
		raw[i] = 0xAB
	}
	b.Reset()
	chans, err := b.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, s := range chans[0].([]uint16) {
		if s != 0 {
			t.Fatalf("sample %d after Reset = %#x, want 0", i, s)
		}
	}
}

func TestDecodeIdempotent(t *testing.T) {
	f := SampleFormat{BitsPerSample: 16, Channels: 2, Interleaved: true}
	b, err := NewBuffer(16, f)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	raw := b.Bytes()
	for i := range raw {
		raw[i] = byte(i * 37)
	}
	before := append([]byte(nil), raw...)
	first, err := b.Decode()
	if err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	second, err := b.Decode()
	if err != nil {
		t.Fatalf("second Decode: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Decode calls returned different results")
	}
	if !reflect.DeepEqual(before, b.Bytes()) {
		t.Error("Decode modified the raw region")
	}
}

func TestDecodeOutputIsACopy(t *testing.T) {
	f := SampleFormat{BitsPerSample: 8, Channels: 1}
	b, err := NewBuffer(4, f)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	chans, err := b.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	chans[0].([]uint8)[0] = 0xFF
	if b.Bytes()[0] != 0 {
		t.Error("mutating decoded output changed the raw region")
	}
}

func TestChecksumTracksContents(t *testing.T) {
	f := SampleFormat{BitsPerSample: 8, Channels: 1}
	b, err := NewBuffer(8, f)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	zero := b.Checksum()
	b.Bytes()[3] = 0x55
	if b.Checksum() == zero {
		t.Error("checksum did not change with contents")
	}
	b.Reset()
	if b.Checksum() != zero {
		t.Error("checksum after Reset differs from the zeroed checksum")
	}
}
