// Package waveform provides type definitions for digitized waveform records
package waveform

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tweber225/atsbindings/ats"
	"github.com/tweber225/atsbindings/dma"
)

// Waveform describes one decoded acquisition
type Waveform struct {
	// DT is the temporal sample spacing in seconds
	DT float64 `json:"dt"`

	// Channels holds named data streams
	Channels map[string]Channel
}

// Channel represents a stream of data from one digitizer input.  To convert
// to physical units, compute (data-reference)*scale
type Channel struct {
	// Data is the actual buffer, []uint8, []uint16, or []uint32
	Data dma.Data

	// Scale is the size of a single increment in Data's native dtype,
	// in volts
	Scale float64

	// Offset is the offset applied to the data in volts
	Offset float64

	// Reference is the mid-scale code for the given channel in DN
	Reference float64
}

// Physical computes the data scaled to volts
func (c Channel) Physical() []float64 {
	switch v := c.Data.(type) {
	case []uint8:
		ret := make([]float64, len(v))
		for i := 0; i < len(v); i++ {
			ret[i] = ((float64(v[i]) - c.Reference) * c.Scale) + c.Offset
		}
		return ret
	case []uint16:
		ret := make([]float64, len(v))
		for i := 0; i < len(v); i++ {
			ret[i] = ((float64(v[i]) - c.Reference) * c.Scale) + c.Offset
		}
		return ret
	case []uint32:
		ret := make([]float64, len(v))
		for i := 0; i < len(v); i++ {
			ret[i] = ((float64(v[i]) - c.Reference) * c.Scale) + c.Offset
		}
		return ret
	default:
		panic("attempt to convert non numerical data to physical units")
	}
}

// Samples is the number of samples in the channel.
func (c Channel) Samples() int {
	switch v := c.Data.(type) {
	case []uint8:
		return len(v)
	case []uint16:
		return len(v)
	case []uint32:
		return len(v)
	default:
		return 0
	}
}

// channelNames labels decoded streams A, B, C...
func channelName(i int) string {
	return string(rune('A' + i))
}

// New assembles a waveform from decoded buffer data.  rate and rng set the
// time base and the vertical scale; bits is the sample resolution used for
// the mid-scale reference (12 for packed 12-bit data, the container width
// otherwise).
func New(decoded []dma.Data, rate ats.SampleRate, rng ats.InputRange, bits int) *Waveform {
	half := float64(int(1) << uint(bits-1))
	wav := &Waveform{Channels: map[string]Channel{}}
	if hz := rate.Hertz(); hz > 0 {
		wav.DT = 1 / float64(hz)
	}
	for i, d := range decoded {
		wav.Channels[channelName(i)] = Channel{
			Data:      d,
			Scale:     rng.Volts() / half,
			Reference: half,
		}
	}
	return wav
}

// EncodeCSV converts the waveform data to physical units and writes it to a
// CSV in streaming fashion
func (wav *Waveform) EncodeCSV(w io.Writer) error {
	if len(wav.Channels) == 0 {
		return fmt.Errorf("waveform: no channels to encode")
	}
	// assemble the floating point data first so we have definite
	// lengths to work with
	labels := make([]string, 0, len(wav.Channels))
	for i := 0; i < len(wav.Channels); i++ {
		name := channelName(i)
		if _, ok := wav.Channels[name]; !ok {
			return fmt.Errorf("waveform: channel %s missing from CSV encode", name)
		}
		labels = append(labels, name)
	}
	data := make([][]float64, len(labels))
	for j := range labels {
		data[j] = wav.Channels[labels[j]].Physical()
	}
	labels = append([]string{"time"}, labels...)

	w2 := bufio.NewWriter(w)
	w3 := csv.NewWriter(w2)
	if err := w3.Write(labels); err != nil {
		return err
	}
	row := make([]string, len(labels))
	for i := 0; i < len(data[0]); i++ {
		row[0] = strconv.FormatFloat(float64(i)*wav.DT, 'G', -1, 64)
		for j := 0; j < len(data); j++ {
			row[j+1] = strconv.FormatFloat(data[j][i], 'G', -1, 64)
		}
		if err := w3.Write(row); err != nil {
			return err
		}
	}
	w3.Flush()
	return w2.Flush()
}
