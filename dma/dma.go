// Package dma provides host-side acquisition buffers for AutoDMA transfers.
//
// A Buffer owns a fixed-size byte region that the driver fills during a
// transfer (PostAsyncBuffer / WaitAsyncBufferComplete) and exposes a decoded
// numeric view over it.  The region is backed by []uint64 to guarantee the
// 8-byte alignment the DMA engine requires.
//
// Buffers are not safe for concurrent use; the driver's write and any Decode
// call must be ordered by the caller through the transfer completion wait.
package dma

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/snksoft/crc"
)

// SampleFormat describes how raw transfer bytes map to logical samples.
// It must not change after a buffer is allocated; allocate a new buffer
// to change formats.
type SampleFormat struct {
	// BitsPerSample is the width of one sample on the wire.
	// 8, 16 and 32 map directly onto native words; 12 is the packed
	// mode where two samples share three bytes.
	BitsPerSample int

	// Channels is the number of enabled input channels.
	Channels int

	// Interleaved indicates samples alternate per channel in the raw
	// stream in round-robin order.
	Interleaved bool
}

// bytesPerSample is the storage a single sample occupies after rounding up
// to whole bytes.  Packed 12-bit samples round to 2.
func (f SampleFormat) bytesPerSample() int {
	return (f.BitsPerSample + 7) / 8
}

// unit is the minimum addressable allocation unit in bytes, one rounded-up
// sample per channel.
func (f SampleFormat) unit() int {
	return f.Channels * f.bytesPerSample()
}

// groupBytes is the smallest number of bytes holding a whole number of
// complete multi-channel sample groups.  For packed 12-bit data this is the
// three byte packed pair unit scaled to cover all channels.
func (f SampleFormat) groupBytes() int {
	// lcm(group bits, 8) expressed in bytes
	bits := f.BitsPerSample * f.Channels
	return bits / gcd(bits, 8)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func (f SampleFormat) validBits() bool {
	switch f.BitsPerSample {
	case 8, 12, 16, 32:
		return true
	}
	return false
}

// AllocationError indicates a requested buffer size that is inconsistent
// with the sample format's constraints.
type AllocationError struct {
	Size   int
	Format SampleFormat
	Reason string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("dma: cannot allocate %d bytes for %d-bit %d-channel data: %s",
		e.Size, e.Format.BitsPerSample, e.Format.Channels, e.Reason)
}

// FormatError indicates a region whose size does not divide into complete
// sample groups at decode time.  The buffer remains usable.
type FormatError struct {
	Size   int
	Format SampleFormat
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dma: cannot decode %d bytes as %d-bit %d-channel data: %s",
		e.Size, e.Format.BitsPerSample, e.Format.Channels, e.Reason)
}

// Data is a decoded sample sequence, []uint8, []uint16, or []uint32
// depending on the sample format
type Data interface{}

// Buffer is a zero-initialized transfer region with a stored sample format.
type Buffer struct {
	// words forces 8-byte alignment, 8 bytes per uint64
	words  []uint64
	size   int
	format SampleFormat
}

// NewBuffer allocates a zeroed region of exactly sizeBytes bytes.  sizeBytes
// must be a positive multiple of the format's minimum addressable unit
// (channels times rounded-up bytes per sample).  Packed 12-bit data over more
// than one channel must be interleaved; the hardware does not produce it any
// other way.
func NewBuffer(sizeBytes int, f SampleFormat) (*Buffer, error) {
	if !f.validBits() {
		return nil, &AllocationError{sizeBytes, f, "bits per sample must be 8, 12, 16 or 32"}
	}
	if f.Channels < 1 {
		return nil, &AllocationError{sizeBytes, f, "channel count must be at least 1"}
	}
	if f.BitsPerSample == 12 && f.Channels > 1 && !f.Interleaved {
		return nil, &AllocationError{sizeBytes, f, "12-bit packed data with multiple channels must be interleaved"}
	}
	if sizeBytes <= 0 {
		return nil, &AllocationError{sizeBytes, f, "size must be positive"}
	}
	if sizeBytes%f.unit() != 0 {
		return nil, &AllocationError{sizeBytes, f,
			fmt.Sprintf("size must be a multiple of %d bytes", f.unit())}
	}
	return &Buffer{
		words:  make([]uint64, (sizeBytes+7)/8),
		size:   sizeBytes,
		format: f,
	}, nil
}

// Size is the region length in bytes.
func (b *Buffer) Size() int { return b.size }

// Format is the sample format the buffer was allocated with.
func (b *Buffer) Format() SampleFormat { return b.format }

// Bytes returns a mutable view of the whole raw region for the driver to
// fill.  The caller must not decode or reset the buffer while a transfer
// into it is in flight.
func (b *Buffer) Bytes() []byte {
	// the region is held as []uint64 for alignment; reinterpret the
	// underlying data rather than copying
	buf := []byte{}
	hdr := (*reflect.SliceHeader)(unsafe.Pointer(&buf))
	hdr.Data = uintptr(unsafe.Pointer(&b.words[0]))
	hdr.Len = b.size
	hdr.Cap = b.size
	return buf
}

// Reset zeroes the raw region in place without reallocating, for reuse
// across repeated transfers.
func (b *Buffer) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}

var crcTable = crc.NewTable(crc.XMODEM)

// Checksum computes a CRC-16/XMODEM over the raw region, for transfer
// integrity logging.
func (b *Buffer) Checksum() uint64 {
	return crcTable.CalculateCRC(b.Bytes())
}

// Decode interprets the raw bytes according to the stored sample format and
// returns one Data sequence per channel when interleaved, else a single flat
// sequence.  The output is freshly materialized; the raw region is never
// modified, and repeated calls on an unmodified region return equal results.
func (b *Buffer) Decode() ([]Data, error) {
	g := b.format.groupBytes()
	if b.size%g != 0 {
		return nil, &FormatError{b.size, b.format,
			fmt.Sprintf("size must be a multiple of the %d byte sample group", g)}
	}
	raw := b.Bytes()
	var flat Data
	switch b.format.BitsPerSample {
	case 8:
		out := make([]uint8, len(raw))
		copy(out, raw)
		flat = out
	case 12:
		flat = unpack12(raw)
	case 16:
		out := make([]uint16, len(raw)/2)
		for i := range out {
			out[i] = binary.LittleEndian.Uint16(raw[2*i:])
		}
		flat = out
	case 32:
		out := make([]uint32, len(raw)/4)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(raw[4*i:])
		}
		flat = out
	}
	if !b.format.Interleaved || b.format.Channels == 1 {
		return []Data{flat}, nil
	}
	return deinterleave(flat, b.format.Channels), nil
}

// unpack12 expands packed 12-bit sample pairs into right-justified uint16
// containers.  Each three byte group [b0 b1 b2] holds two samples:
// the first is b0 plus the low nibble of b1, the second is the high nibble
// of b1 plus b2.
func unpack12(raw []byte) []uint16 {
	out := make([]uint16, len(raw)/3*2)
	for i, j := 0, 0; i+2 < len(raw); i, j = i+3, j+2 {
		b0, b1, b2 := raw[i], raw[i+1], raw[i+2]
		out[j] = uint16(b0) | uint16(b1&0x0F)<<8
		out[j+1] = uint16(b1>>4) | uint16(b2)<<4
	}
	return out
}

// deinterleave splits a flat round-robin sequence into channels separate
// ordered sequences.  The switch gets us around the type system, as elsewhere.
func deinterleave(flat Data, channels int) []Data {
	out := make([]Data, channels)
	switch v := flat.(type) {
	case []uint8:
		n := len(v) / channels
		for c := 0; c < channels; c++ {
			ch := make([]uint8, n)
			for i := 0; i < n; i++ {
				ch[i] = v[i*channels+c]
			}
			out[c] = ch
		}
	case []uint16:
		n := len(v) / channels
		for c := 0; c < channels; c++ {
			ch := make([]uint16, n)
			for i := 0; i < n; i++ {
				ch[i] = v[i*channels+c]
			}
			out[c] = ch
		}
	case []uint32:
		n := len(v) / channels
		for c := 0; c < channels; c++ {
			ch := make([]uint32, n)
			for i := 0; i < n; i++ {
				ch[i] = v[i*channels+c]
			}
			out[c] = ch
		}
	}
	return out
}
