package waveform

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/tweber225/atsbindings/ats"
	"github.com/tweber225/atsbindings/dma"
)

func TestPhysical(t *testing.T) {
	// 16-bit data on a ±1 V range: mid scale is 0 V, full scale is ±1 V
	c := Channel{
		Data:      []uint16{32768, 0, 65535},
		Scale:     1.0 / 32768,
		Reference: 32768,
	}
	p := c.Physical()
	if p[0] != 0 {
		t.Errorf("mid scale = %g V, want 0", p[0])
	}
	if p[1] != -1 {
		t.Errorf("zero code = %g V, want -1", p[1])
	}
	if math.Abs(p[2]-1) > 1e-3 {
		t.Errorf("full scale = %g V, want about 1", p[2])
	}
}

func TestNew(t *testing.T) {
	decoded := []dma.Data{
		[]uint16{0x800, 0x800},
		[]uint16{0, 0xFFF},
	}
	wav := New(decoded, ats.SampleRate100MSPS, ats.InputRangePM400mV, 12)
	if len(wav.Channels) != 2 {
		t.Fatalf("got %d channels, want 2", len(wav.Channels))
	}
	if wav.DT != 1e-8 {
		t.Errorf("DT = %g, want 1e-8", wav.DT)
	}
	a := wav.Channels["A"].Physical()
	if math.Abs(a[0]) > 1e-9 {
		t.Errorf("mid-scale 12-bit code decodes to %g V, want 0", a[0])
	}
	b := wav.Channels["B"].Physical()
	if math.Abs(b[0]+0.4) > 1e-9 {
		t.Errorf("zero code decodes to %g V, want -0.4", b[0])
	}
}

func TestEncodeCSV(t *testing.T) {
	wav := New([]dma.Data{[]uint8{128, 255}}, ats.SampleRate1MSPS, ats.InputRangePM1V, 8)
	var buf bytes.Buffer
	if err := wav.EncodeCSV(&buf); err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 samples", len(lines))
	}
	if lines[0] != "time,A" {
		t.Errorf("header = %q, want %q", lines[0], "time,A")
	}
	if !strings.HasPrefix(lines[1], "0,") {
		t.Errorf("first row = %q, want time 0", lines[1])
	}
}

func TestEncodeCSVNoChannels(t *testing.T) {
	wav := &Waveform{DT: 1e-6, Channels: map[string]Channel{}}
	var buf bytes.Buffer
	if err := wav.EncodeCSV(&buf); err == nil {
		t.Error("expected an error for a waveform with no channels")
	}
}

func TestEncodeFITS(t *testing.T) {
	wav := New([]dma.Data{
		[]uint16{0, 1, 2, 3},
		[]uint16{4, 5, 6, 7},
	}, ats.SampleRate1MSPS, ats.InputRangePM1V, 16)
	var buf bytes.Buffer
	if err := wav.EncodeFITS(&buf, nil); err != nil {
		t.Fatalf("EncodeFITS: %v", err)
	}
	if buf.Len() == 0 || buf.Len()%2880 != 0 {
		t.Errorf("FITS output is %d bytes, want a positive multiple of 2880", buf.Len())
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("SIMPLE")) {
		t.Error("FITS output does not start with SIMPLE")
	}
}

func TestSummarize(t *testing.T) {
	c := Channel{
		Data:      []uint8{100, 110, 120, 130},
		Scale:     1,
		Reference: 0,
	}
	s := c.Summarize()
	if s.Mean != 115 {
		t.Errorf("Mean = %g, want 115", s.Mean)
	}
	if s.Min != 100 || s.Max != 130 {
		t.Errorf("Min/Max = %g/%g, want 100/130", s.Min, s.Max)
	}
	if s.PkPk != 30 {
		t.Errorf("PkPk = %g, want 30", s.PkPk)
	}
}

func TestPowerSpectrumPeak(t *testing.T) {
	// synthesize a sine at bin 8 of 64 on a 1 MS/s time base
	const (
		n   = 64
		bin = 8
	)
	data := make([]uint16, n)
	for i := range data {
		data[i] = uint16(32768 + 16000*math.Sin(2*math.Pi*float64(bin)*float64(i)/n))
	}
	wav := New([]dma.Data{data}, ats.SampleRate1MSPS, ats.InputRangePM1V, 16)
	sp, err := wav.PowerSpectrum("A")
	if err != nil {
		t.Fatalf("PowerSpectrum: %v", err)
	}
	freq, power := sp.Peak()
	wantFreq := float64(bin) * 1e6 / n
	if math.Abs(freq-wantFreq) > 1 {
		t.Errorf("peak at %g Hz, want %g Hz", freq, wantFreq)
	}
	if power <= 0 {
		t.Errorf("peak power = %g, want positive", power)
	}
}

func TestPowerSpectrumMissingChannel(t *testing.T) {
	wav := New(nil, ats.SampleRate1MSPS, ats.InputRangePM1V, 16)
	if _, err := wav.PowerSpectrum("Q"); err == nil {
		t.Error("expected an error for a missing channel")
	}
}
