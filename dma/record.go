package dma

import (
	"encoding/binary"
	"fmt"
)

// Sizes of the fixed metadata blocks the board can attach to each record.
const (
	RecordHeaderBytes = 16
	RecordFooterBytes = 16
)

// RecordHeader is the 16-byte metadata block prepended to each record when
// record headers are enabled.  Many fields read back as zero on boards that
// do not implement them.
type RecordHeader struct {
	SerialNumber     uint32 // bits 17..0 of word 0
	SystemNumber     uint32 // bits 21..18
	WhichChannel     uint32 // bit 22
	BoardNumber      uint32 // bits 26..23
	SampleResolution uint32 // bits 29..27
	DataFormat       uint32 // bits 31..30

	RecordNumber uint32 // bits 23..0 of word 1
	BoardType    uint32 // bits 31..24

	timeStampLow  uint32 // word 2
	timeStampHigh uint32 // bits 7..0 of word 3

	ClockSource          uint32 // bits 9..8 of word 3
	ClockEdge            uint32 // bit 10
	SampleRate           uint32 // bits 17..11
	InputRange           uint32 // bits 22..18
	InputCoupling        uint32 // bits 24..23
	InputImpedance       uint32 // bits 26..25
	ExternalTriggered    bool   // bit 27
	ChannelBTriggered    bool   // bit 28
	ChannelATriggered    bool   // bit 29
	TimeOutOccurred      bool   // bit 30
	ThisChannelTriggered bool   // bit 31
}

// Timestamp is the trigger time in sample clock periods.  The scale to
// seconds is board specific (samples per timestamp clock).
func (h RecordHeader) Timestamp() uint64 {
	return uint64(h.timeStampLow) | uint64(h.timeStampHigh)<<32
}

// ParseRecordHeader decodes the four little-endian 32-bit words of a record
// header from the front of raw.
func ParseRecordHeader(raw []byte) (RecordHeader, error) {
	if len(raw) < RecordHeaderBytes {
		return RecordHeader{}, fmt.Errorf("dma: record header needs %d bytes, have %d", RecordHeaderBytes, len(raw))
	}
	w0 := binary.LittleEndian.Uint32(raw[0:])
	w1 := binary.LittleEndian.Uint32(raw[4:])
	w2 := binary.LittleEndian.Uint32(raw[8:])
	w3 := binary.LittleEndian.Uint32(raw[12:])
	return RecordHeader{
		SerialNumber:     w0 & 0x3FFFF,
		SystemNumber:     w0 >> 18 & 0xF,
		WhichChannel:     w0 >> 22 & 0x1,
		BoardNumber:      w0 >> 23 & 0xF,
		SampleResolution: w0 >> 27 & 0x7,
		DataFormat:       w0 >> 30 & 0x3,

		RecordNumber: w1 & 0xFFFFFF,
		BoardType:    w1 >> 24 & 0xFF,

		timeStampLow:  w2,
		timeStampHigh: w3 & 0xFF,

		ClockSource:          w3 >> 8 & 0x3,
		ClockEdge:            w3 >> 10 & 0x1,
		SampleRate:           w3 >> 11 & 0x7F,
		InputRange:           w3 >> 18 & 0x1F,
		InputCoupling:        w3 >> 23 & 0x3,
		InputImpedance:       w3 >> 25 & 0x3,
		ExternalTriggered:    w3>>27&0x1 != 0,
		ChannelBTriggered:    w3>>28&0x1 != 0,
		ChannelATriggered:    w3>>29&0x1 != 0,
		TimeOutOccurred:      w3>>30&0x1 != 0,
		ThisChannelTriggered: w3>>31&0x1 != 0,
	}, nil
}

// RecordFooter is the 16-byte metadata block appended to each record when
// record footers are enabled.
type RecordFooter struct {
	AuxAndPulsarLow uint8
	PulsarHigh      uint8
	Type            uint8

	ttLow  uint16
	ttMed  uint16
	ttHigh uint16
	rnLow  uint16
	rnHigh uint16
	fcLow  uint16
	fcHigh uint8
}

// RecordNumber combines the low and high record number parts.
func (f RecordFooter) RecordNumber() uint32 {
	return uint32(f.rnLow) | uint32(f.rnHigh)<<16
}

// FrameCount combines the low and high frame count parts.
func (f RecordFooter) FrameCount() uint32 {
	return uint32(f.fcLow) | uint32(f.fcHigh)<<16
}

// Timestamp combines the three trigger timestamp parts.
func (f RecordFooter) Timestamp() uint64 {
	return uint64(f.ttLow) | uint64(f.ttMed)<<16 | uint64(f.ttHigh)<<32
}

// ParseRecordFooter decodes a little-endian record footer from the front of
// raw.
func ParseRecordFooter(raw []byte) (RecordFooter, error) {
	if len(raw) < RecordFooterBytes {
		return RecordFooter{}, fmt.Errorf("dma: record footer needs %d bytes, have %d", RecordFooterBytes, len(raw))
	}
	return RecordFooter{
		AuxAndPulsarLow: raw[0],
		PulsarHigh:      raw[1],
		ttLow:           binary.LittleEndian.Uint16(raw[2:]),
		ttMed:           binary.LittleEndian.Uint16(raw[4:]),
		ttHigh:          binary.LittleEndian.Uint16(raw[6:]),
		rnLow:           binary.LittleEndian.Uint16(raw[8:]),
		rnHigh:          binary.LittleEndian.Uint16(raw[10:]),
		fcLow:           binary.LittleEndian.Uint16(raw[12:]),
		fcHigh:          raw[14],
		Type:            raw[15],
	}, nil
}

// Layout sizes a transfer of records with optional per-record metadata.
type Layout struct {
	Format           SampleFormat
	SamplesPerRecord int
	RecordsPerBuffer int
	Headers          bool
	Footers          bool
}

// BytesPerRecord is the storage one record occupies, sample payload plus any
// enabled header and footer blocks.
func (l Layout) BytesPerRecord() int {
	n := (l.SamplesPerRecord*l.Format.Channels*l.Format.BitsPerSample + 7) / 8
	if l.Headers {
		n += RecordHeaderBytes
	}
	if l.Footers {
		n += RecordFooterBytes
	}
	return n
}

// BytesPerBuffer is the total transfer size for RecordsPerBuffer records.
func (l Layout) BytesPerBuffer() int {
	return l.BytesPerRecord() * l.RecordsPerBuffer
}

// NewBuffer allocates a buffer sized for the whole layout.
func (l Layout) NewBuffer() (*Buffer, error) {
	return NewBuffer(l.BytesPerBuffer(), l.Format)
}
