package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tweber225/atsbindings/alazar"
	"github.com/tweber225/atsbindings/ats"
	"github.com/tweber225/atsbindings/atshttp"
	"github.com/tweber225/atsbindings/bsi"
	"github.com/tweber225/atsbindings/dma"
	"github.com/tweber225/atsbindings/waveform"
)

var captureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "atssrv",
	Name:      "captures_total",
	Help:      "Number of capture requests served, by board.",
}, []string{"board"})

// digitizer adapts a board to the HTTP wrapper.  One capture may run at a
// time; the mutex serializes access to the hardware.
type digitizer struct {
	sync.Mutex
	board *alazar.Board
	label string
	busy  bool
}

func (d *digitizer) Model() ats.BoardType {
	return d.board.BoardKind()
}

func (d *digitizer) SerialNumber() (uint32, error) {
	return d.board.SerialNumber()
}

func (d *digitizer) Info() (*bsi.Info, error) {
	return bsi.For(d.board.BoardKind())
}

func (d *digitizer) Busy() bool {
	d.Lock()
	defer d.Unlock()
	return d.busy
}

func (d *digitizer) setBusy(b bool) {
	d.Lock()
	d.busy = b
	d.Unlock()
}

// Capture runs one NPT acquisition with auto triggering and returns the
// decoded waveform.
func (d *digitizer) Capture(req atshttp.CaptureRequest) (*waveform.Waveform, error) {
	if d.Busy() {
		return nil, fmt.Errorf("board %s is busy", d.label)
	}
	d.setBusy(true)
	defer d.setBusy(false)

	if req.Channels < 1 {
		req.Channels = 1
	}
	if req.SamplesPerRecord < 1 {
		return nil, fmt.Errorf("samplesPerRecord must be positive")
	}
	if req.Records < 1 {
		req.Records = 1
	}
	rate := ats.SampleRate10MSPS
	if req.SampleRate != "" {
		var err error
		rate, err = ats.ParseSampleRate(req.SampleRate)
		if err != nil {
			return nil, err
		}
	}
	rng := ats.InputRangePM400mV
	if req.InputRange != "" {
		var err error
		rng, err = ats.ParseInputRange(req.InputRange)
		if err != nil {
			return nil, err
		}
	}
	coupling := ats.CouplingDC
	if req.Coupling != "" {
		var err error
		coupling, err = ats.ParseCoupling(req.Coupling)
		if err != nil {
			return nil, err
		}
	}
	pack := ats.PackDefault
	if req.PackMode != "" {
		var err error
		pack, err = ats.ParsePackMode(req.PackMode)
		if err != nil {
			return nil, err
		}
	}

	b := d.board
	if err := b.SetCaptureClock(ats.InternalClock, rate, ats.ClockEdgeRising, 0); err != nil {
		return nil, err
	}
	var mask ats.Channel
	for i := 0; i < req.Channels; i++ {
		ch, err := ats.ChannelFromIndex(i)
		if err != nil {
			return nil, err
		}
		mask |= ch
		if err := b.InputControlEx(ch, coupling, rng, ats.Impedance50Ohm); err != nil {
			return nil, err
		}
	}
	err := b.SetTriggerOperation(ats.TriggerOpJ,
		ats.TriggerEngineJ, ats.TrigChanA, ats.TriggerSlopePositive, 128,
		ats.TriggerEngineK, ats.TrigDisable, ats.TriggerSlopePositive, 192)
	if err != nil {
		return nil, err
	}
	// short timeout forces triggers so a capture never hangs on a quiet input
	if err := b.SetTriggerTimeout(10 * time.Microsecond); err != nil {
		return nil, err
	}
	if err := b.SetTriggerDelay(0); err != nil {
		return nil, err
	}
	if err := b.SetPackMode(pack); err != nil {
		return nil, err
	}

	bits := 16
	switch pack {
	case ats.Pack8BitsPerSample:
		bits = 8
	case ats.Pack12BitsPerSample:
		bits = 12
	}
	interleave := req.Channels > 1
	layout := dma.Layout{
		Format: dma.SampleFormat{
			BitsPerSample: bits,
			Channels:      req.Channels,
			Interleaved:   interleave,
		},
		SamplesPerRecord: req.SamplesPerRecord,
		RecordsPerBuffer: req.Records,
	}
	buf, err := layout.NewBuffer()
	if err != nil {
		return nil, err
	}

	if err := b.SetRecordSize(0, req.SamplesPerRecord); err != nil {
		return nil, err
	}
	flags := ats.ADMAExternalStartCapture
	if interleave {
		flags |= ats.ADMAInterleaveSamples
	}
	err = b.BeforeAsyncRead(mask, 0, req.SamplesPerRecord, req.Records,
		req.Records, ats.ADMANPT, flags)
	if err != nil {
		return nil, err
	}
	defer b.AbortAsyncRead()
	if err := b.PostAsyncBuffer(buf); err != nil {
		return nil, err
	}
	if err := b.StartCapture(); err != nil {
		return nil, err
	}
	if err := b.WaitAsyncBufferComplete(buf, 10*time.Second); err != nil {
		return nil, err
	}
	decoded, err := buf.Decode()
	if err != nil {
		return nil, err
	}
	captureCounter.WithLabelValues(d.label).Inc()
	return waveform.New(decoded, rate, rng, bits), nil
}
