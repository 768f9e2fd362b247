// Package bsi holds board-specific information for ATS digitizers.
//
// The vendor API does not expose every model constraint at runtime; the
// record size granularity, pretrigger alignment and supported input ranges
// come from tables in the SDK user guide.  Those tables are embedded here
// and looked up by board model.
package bsi

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"

	"github.com/tweber225/atsbindings/ats"
)

//go:embed board_specific_info.toml
var rawTable []byte

var (
	loadOnce sync.Once
	loadErr  error
	k        = koanf.New(".")
)

func load() error {
	loadOnce.Do(func() {
		loadErr = k.Load(rawbytes.Provider(rawTable), toml.Parser())
	})
	return loadErr
}

// record mirrors one board's table in the TOML file.
type record struct {
	Channels              int                  `koanf:"channels"`
	InputRanges           map[string][]string  `koanf:"input_ranges"`
	MinRecordSize         int                  `koanf:"min_record_size"`
	PretrigAlignment      int                  `koanf:"pretrig_alignment"`
	RecordResolution      int                  `koanf:"record_resolution"`
	MaxNPTPretrigLength   int                  `koanf:"max_npt_pretrig_length"`
	SamplesPerTimestamp   map[string]int       `koanf:"samples_per_timestamp"`
	ChannelConfigs        []string             `koanf:"channel_configs"`
	SampleRates           []string             `koanf:"sample_rates"`
	ExternalTriggerLevels []string             `koanf:"external_trigger_levels"`
	ExternalClockLimits   map[string][]float64 `koanf:"external_clock_frequency_limits"`
}

// Info is the board-specific capability table for one digitizer model.
type Info struct {
	Board ats.BoardType

	// Channels is the number of input channels on the board.
	Channels int

	// MinRecordSize is the smallest legal record length in samples.
	MinRecordSize int

	// PretrigAlignment is the granularity of the pretrigger length.
	PretrigAlignment int

	// RecordResolution is the granularity of the record length.
	RecordResolution int

	// MaxNPTPretrigLength is the largest pretrigger length in NPT mode,
	// zero when NPT pretrigger is unsupported.
	MaxNPTPretrigLength int

	rec record
}

// For looks up the capability table for a board model.
func For(board ats.BoardType) (*Info, error) {
	if err := load(); err != nil {
		return nil, fmt.Errorf("bsi: parsing embedded table: %w", err)
	}
	name := board.String()
	if k.Get(name) == nil {
		return nil, fmt.Errorf("bsi: no board-specific information for %s", name)
	}
	var rec record
	if err := k.Unmarshal(name, &rec); err != nil {
		return nil, fmt.Errorf("bsi: unmarshaling %s: %w", name, err)
	}
	return &Info{
		Board:               board,
		Channels:            rec.Channels,
		MinRecordSize:       rec.MinRecordSize,
		PretrigAlignment:    rec.PretrigAlignment,
		RecordResolution:    rec.RecordResolution,
		MaxNPTPretrigLength: rec.MaxNPTPretrigLength,
		rec:                 rec,
	}, nil
}

// InputImpedances lists the input terminations the board supports.
func (i *Info) InputImpedances() ([]ats.Impedance, error) {
	out := make([]ats.Impedance, 0, len(i.rec.InputRanges))
	for key := range i.rec.InputRanges {
		var ohms int
		if _, err := fmt.Sscanf(key, "%dohm", &ohms); err != nil {
			return nil, fmt.Errorf("bsi: bad impedance key %q: %w", key, err)
		}
		imp, err := ats.ImpedanceFromOhms(ohms)
		if err != nil {
			return nil, err
		}
		out = append(out, imp)
	}
	return out, nil
}

// InputRanges lists the full-scale ranges available at one termination.
func (i *Info) InputRanges(impedance ats.Impedance) ([]ats.InputRange, error) {
	key := fmt.Sprintf("%dohm", impedance.Ohms())
	strs, ok := i.rec.InputRanges[key]
	if !ok {
		return nil, fmt.Errorf("bsi: %s has no %s termination", i.Board, impedance)
	}
	out := make([]ats.InputRange, len(strs))
	for n, s := range strs {
		r, err := ats.ParseInputRange(s)
		if err != nil {
			return nil, err
		}
		out[n] = r
	}
	return out, nil
}

// SamplesPerTimestamp is the number of sample clock periods per timestamp
// tick for a given number of active channels.
func (i *Info) SamplesPerTimestamp(activeChannels int) (int, error) {
	key := fmt.Sprintf("%dchannels", activeChannels)
	if activeChannels == 1 {
		key = "1channel"
	}
	v, ok := i.rec.SamplesPerTimestamp[key]
	if !ok {
		return 0, fmt.Errorf("bsi: %s has no timestamp entry for %d channels", i.Board, activeChannels)
	}
	return v, nil
}

// ChannelConfigs lists the channel masks the board can acquire with.
func (i *Info) ChannelConfigs() []ats.Channel {
	out := make([]ats.Channel, len(i.rec.ChannelConfigs))
	for n, cfg := range i.rec.ChannelConfigs {
		var mask ats.Channel
		// bit strings read channel A first
		for b, c := range cfg {
			if c == '1' {
				mask |= 1 << uint(b)
			}
		}
		out[n] = mask
	}
	return out
}

// SampleRates lists the internally generated rates the board supports.
func (i *Info) SampleRates() ([]ats.SampleRate, error) {
	out := make([]ats.SampleRate, len(i.rec.SampleRates))
	for n, s := range i.rec.SampleRates {
		r, err := ats.ParseSampleRate(s)
		if err != nil {
			return nil, err
		}
		out[n] = r
	}
	return out, nil
}

// ExternalTriggerRanges lists the external trigger input ranges.
func (i *Info) ExternalTriggerRanges() ([]ats.ExternalTriggerRange, error) {
	out := make([]ats.ExternalTriggerRange, 0, len(i.rec.ExternalTriggerLevels))
	for _, s := range i.rec.ExternalTriggerLevels {
		switch s {
		case "5 V":
			out = append(out, ats.ETR5V50Ohm)
		case "1 V":
			out = append(out, ats.ETR1V50Ohm)
		case "2.5 V":
			out = append(out, ats.ETR2V550Ohm)
		case "TTL":
			out = append(out, ats.ETRTTL)
		default:
			return nil, fmt.Errorf("bsi: unknown external trigger level %q", s)
		}
	}
	return out, nil
}

// clockKeys maps external clock limit table keys to clock sources.
var clockKeys = map[string]ats.ClockSource{
	"Fast":      ats.FastExternalClock,
	"Medium":    ats.MediumExternalClock,
	"Slow":      ats.SlowExternalClock,
	"AC":        ats.ExternalClockAC,
	"DC":        ats.ExternalClockDC,
	"10MHz_ref": ats.ExternalClock10MHzRef,
}

// SupportedClocks lists the clock sources the board accepts.  Every board
// supports the internal clock.
func (i *Info) SupportedClocks() []ats.ClockSource {
	out := []ats.ClockSource{ats.InternalClock}
	for key := range i.rec.ExternalClockLimits {
		if src, ok := clockKeys[key]; ok {
			out = append(out, src)
		}
	}
	return out
}

// ExternalClockFrequencyRange returns the frequency limits in Hz for an
// external clock source.
func (i *Info) ExternalClockFrequencyRange(source ats.ClockSource) (min, max float64, err error) {
	for key, src := range clockKeys {
		if src != source {
			continue
		}
		lim, ok := i.rec.ExternalClockLimits[key]
		if !ok || len(lim) != 2 {
			break
		}
		return lim[0], lim[1], nil
	}
	return 0, 0, fmt.Errorf("bsi: %s does not accept %s", i.Board, source)
}

// Boards lists the models present in the embedded table.
func Boards() ([]ats.BoardType, error) {
	if err := load(); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []ats.BoardType
	for _, key := range k.Keys() {
		name := strings.SplitN(key, ".", 2)[0]
		if seen[name] {
			continue
		}
		seen[name] = true
		b, err := ats.ParseBoardType(name)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
