// Command acquire runs a multi-buffer AutoDMA acquisition and writes the
// last decoded buffer to CSV or FITS.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tweber225/atsbindings/alazar"
	"github.com/tweber225/atsbindings/ats"
	"github.com/tweber225/atsbindings/dma"
	"github.com/tweber225/atsbindings/waveform"
)

type options struct {
	system           int
	board            int
	channels         int
	sampleRate       string
	inputRange       string
	impedanceOhms    int
	trigger          string
	triggerLevel     int
	mode             string
	samplesPerRecord int
	recordsPerBuffer int
	buffers          int
	bufferCount      int
	headers          bool
	footers          bool
	interleave       bool
	pack             string
	verify           bool
	timeout          time.Duration
	output           string
}

func parseFlags() options {
	var o options
	flag.IntVar(&o.system, "system", 1, "system ID of the board")
	flag.IntVar(&o.board, "board", 1, "board ID within the system")
	flag.IntVar(&o.channels, "channels", 1, "number of channels to acquire, starting from A")
	flag.StringVar(&o.sampleRate, "rate", "20 MS/s", "internal sample rate, e.g. '20 MS/s'")
	flag.StringVar(&o.inputRange, "range", "±400 mV", "input range, e.g. '±400 mV'")
	flag.IntVar(&o.impedanceOhms, "impedance", 50, "input termination in ohms")
	flag.StringVar(&o.trigger, "trigger", "External", "trigger source, e.g. 'Channel A' or 'External'")
	flag.IntVar(&o.triggerLevel, "level", 128, "trigger level code, 0..255 with 128 at zero volts")
	flag.StringVar(&o.mode, "mode", "npt", "acquisition mode: npt, traditional, continuous or triggered-streaming")
	flag.IntVar(&o.samplesPerRecord, "samples", 1024, "samples per record")
	flag.IntVar(&o.recordsPerBuffer, "records", 128, "records per buffer")
	flag.IntVar(&o.buffers, "buffers", 4, "buffers to acquire")
	flag.IntVar(&o.bufferCount, "buffer-count", 4, "DMA buffers to rotate through")
	flag.BoolVar(&o.headers, "headers", false, "enable record headers (traditional mode only)")
	flag.BoolVar(&o.footers, "footers", false, "enable record footers (NPT mode only)")
	flag.BoolVar(&o.interleave, "interleave", false, "interleave samples across channels")
	flag.StringVar(&o.pack, "pack", "None", "data packing: None, 8-bit or 12-bit")
	flag.BoolVar(&o.verify, "verify", false, "log a CRC of each completed buffer")
	flag.DurationVar(&o.timeout, "timeout", 10*time.Second, "per-buffer DMA completion timeout")
	flag.StringVar(&o.output, "o", "", "output file, .csv or .fits (blank for none)")
	flag.Parse()
	return o
}

func admaMode(s string) (ats.ADMAMode, error) {
	switch strings.ToLower(s) {
	case "npt":
		return ats.ADMANPT, nil
	case "traditional":
		return ats.ADMATraditional, nil
	case "continuous":
		return ats.ADMAContinuous, nil
	case "triggered-streaming":
		return ats.ADMATriggeredStreaming, nil
	}
	return 0, fmt.Errorf("unknown acquisition mode %q", s)
}

func checkOptions(o options, mode ats.ADMAMode, pack ats.PackMode) error {
	if o.headers && mode != ats.ADMATraditional {
		return fmt.Errorf("record headers are only available in traditional mode")
	}
	if o.footers {
		if mode != ats.ADMANPT {
			return fmt.Errorf("record footers are only available in NPT mode")
		}
		if pack != ats.PackDefault {
			return fmt.Errorf("record footers are not available with data packing")
		}
	}
	if pack == ats.Pack12BitsPerSample && o.channels > 1 && !o.interleave {
		return fmt.Errorf("12-bit packing requires interleaved samples")
	}
	return nil
}

func configure(b *alazar.Board, o options) error {
	rate, err := ats.ParseSampleRate(o.sampleRate)
	if err != nil {
		return err
	}
	if err := b.SetCaptureClock(ats.InternalClock, rate, ats.ClockEdgeRising, 0); err != nil {
		return err
	}
	rng, err := ats.ParseInputRange(o.inputRange)
	if err != nil {
		return err
	}
	imp, err := ats.ImpedanceFromOhms(o.impedanceOhms)
	if err != nil {
		return err
	}
	for i := 0; i < o.channels; i++ {
		ch, err := ats.ChannelFromIndex(i)
		if err != nil {
			return err
		}
		if err := b.InputControlEx(ch, ats.CouplingDC, rng, imp); err != nil {
			return err
		}
	}
	src, err := ats.ParseTriggerSource(o.trigger)
	if err != nil {
		return err
	}
	err = b.SetTriggerOperation(ats.TriggerOpJ,
		ats.TriggerEngineJ, src, ats.TriggerSlopePositive, o.triggerLevel,
		ats.TriggerEngineK, ats.TrigDisable, ats.TriggerSlopePositive, 192)
	if err != nil {
		return err
	}
	if src == ats.TrigExternal {
		if err := b.SetExternalTrigger(ats.CouplingDC, ats.ETR2V550Ohm); err != nil {
			return err
		}
	}
	// zero timeout waits indefinitely for a trigger
	if err := b.SetTriggerTimeout(0); err != nil {
		return err
	}
	if err := b.SetTriggerDelay(0); err != nil {
		return err
	}
	return b.ConfigureAuxIO(ats.AuxOutTrigger, 0)
}

func main() {
	log.SetFlags(log.Ltime)
	o := parseFlags()

	mode, err := admaMode(o.mode)
	if err != nil {
		log.Fatal(err)
	}
	pack, err := ats.ParsePackMode(o.pack)
	if err != nil {
		log.Fatal(err)
	}
	if err := checkOptions(o, mode, pack); err != nil {
		log.Fatal(err)
	}

	b, err := alazar.Open(o.system, o.board)
	if err != nil {
		log.Fatal(err)
	}
	if err := configure(b, o); err != nil {
		log.Fatal(err)
	}
	if err := b.SetPackMode(pack); err != nil {
		log.Fatal(err)
	}

	bits := 16
	switch pack {
	case ats.Pack8BitsPerSample:
		bits = 8
	case ats.Pack12BitsPerSample:
		bits = 12
	}
	layout := dma.Layout{
		Format: dma.SampleFormat{
			BitsPerSample: bits,
			Channels:      o.channels,
			Interleaved:   o.interleave,
		},
		SamplesPerRecord: o.samplesPerRecord,
		RecordsPerBuffer: o.recordsPerBuffer,
		Headers:          o.headers,
		Footers:          o.footers,
	}
	buffers := make([]*dma.Buffer, o.bufferCount)
	for i := range buffers {
		buffers[i], err = layout.NewBuffer()
		if err != nil {
			log.Fatal(err)
		}
	}

	if err := b.SetRecordSize(0, o.samplesPerRecord); err != nil {
		log.Fatal(err)
	}

	var mask ats.Channel
	for i := 0; i < o.channels; i++ {
		ch, err := ats.ChannelFromIndex(i)
		if err != nil {
			log.Fatal(err)
		}
		mask |= ch
	}
	flags := ats.ADMAExternalStartCapture
	if o.headers {
		flags |= ats.ADMAEnableRecordHeaders
	}
	if o.footers {
		flags |= ats.ADMAEnableRecordFooters
	}
	if o.interleave {
		flags |= ats.ADMAInterleaveSamples
	}
	err = b.BeforeAsyncRead(mask, 0, o.samplesPerRecord, o.recordsPerBuffer,
		o.buffers*o.recordsPerBuffer, mode, flags)
	if err != nil {
		log.Fatal(err)
	}
	for _, buf := range buffers {
		if err := b.PostAsyncBuffer(buf); err != nil {
			log.Fatal(err)
		}
	}

	bar := progressbar.NewOptions(o.buffers,
		progressbar.OptionSetDescription("acquiring"),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
	)

	var last *dma.Buffer
	err = func() error {
		defer b.AbortAsyncRead()
		if err := b.StartCapture(); err != nil {
			return err
		}
		for completed := 0; completed < o.buffers; completed++ {
			buf := buffers[completed%o.bufferCount]
			if err := b.WaitAsyncBufferComplete(buf, o.timeout); err != nil {
				return err
			}
			bar.Add(1)
			if o.verify {
				log.Printf("buffer %d crc %016x", completed, buf.Checksum())
			}
			if o.headers {
				h, err := dma.ParseRecordHeader(buf.Bytes())
				if err != nil {
					return err
				}
				log.Printf("record %d timestamp %d", h.RecordNumber, h.Timestamp())
			}
			if o.footers {
				raw := buf.Bytes()
				f, err := dma.ParseRecordFooter(raw[layout.BytesPerRecord()-dma.RecordFooterBytes:])
				if err != nil {
					return err
				}
				log.Printf("record %d timestamp %d", f.RecordNumber(), f.Timestamp())
			}
			if completed == o.buffers-1 {
				last = buf
				break
			}
			if err := b.PostAsyncBuffer(buf); err != nil {
				return err
			}
		}
		return nil
	}()
	fmt.Println()
	if err != nil {
		log.Fatal(err)
	}
	log.Println("acquisition done")

	if o.output == "" || last == nil {
		return
	}
	if o.headers || o.footers {
		log.Fatal("output files require a buffer without header or footer blocks")
	}
	decoded, err := last.Decode()
	if err != nil {
		log.Fatal(err)
	}
	rate, _ := ats.ParseSampleRate(o.sampleRate)
	rng, _ := ats.ParseInputRange(o.inputRange)
	wav := waveform.New(decoded, rate, rng, bits)

	f, err := os.Create(o.output)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	switch ext := strings.ToLower(filepath.Ext(o.output)); ext {
	case ".csv":
		err = wav.EncodeCSV(f)
	case ".fits", ".fit":
		err = wav.EncodeFITS(f, nil)
	default:
		err = fmt.Errorf("unsupported output extension %q", ext)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", o.output)
}
