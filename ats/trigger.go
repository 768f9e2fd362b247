package ats

import "fmt"

// TriggerEngine identifies one of the two trigger engines.
type TriggerEngine uint32

// Trigger engines from ALAZAR_TRIGGER_ENGINES
const (
	TriggerEngineJ TriggerEngine = 0
	TriggerEngineK TriggerEngine = 1
)

func (t TriggerEngine) String() string {
	if t == TriggerEngineK {
		return "K"
	}
	return "J"
}

// TriggerOperation is a boolean combination of the two trigger engines.
type TriggerOperation uint32

// Trigger operations from ALAZAR_TRIGGER_OPERATIONS
const (
	TriggerOpJ        TriggerOperation = 0
	TriggerOpK        TriggerOperation = 1
	TriggerOpJOrK     TriggerOperation = 2
	TriggerOpJAndK    TriggerOperation = 3
	TriggerOpJXorK    TriggerOperation = 4
	TriggerOpJAndNotK TriggerOperation = 5
	TriggerOpNotJAndK TriggerOperation = 6
)

// TriggerSource selects what signal a trigger engine watches.
type TriggerSource uint32

// Trigger sources from ALAZAR_TRIGGER_SOURCES
const (
	TrigChanA    TriggerSource = 0x0
	TrigChanB    TriggerSource = 0x1
	TrigExternal TriggerSource = 0x2
	TrigDisable  TriggerSource = 0x3
	TrigChanC    TriggerSource = 0x4
	TrigChanD    TriggerSource = 0x5
	TrigChanE    TriggerSource = 0x6
	TrigChanF    TriggerSource = 0x7
	TrigChanG    TriggerSource = 0x8
	TrigChanH    TriggerSource = 0x9
	TrigChanI    TriggerSource = 0xA
	TrigChanJ    TriggerSource = 0xB
	TrigChanK    TriggerSource = 0xC
	TrigChanL    TriggerSource = 0xD
	TrigChanM    TriggerSource = 0xE
	TrigChanN    TriggerSource = 0xF
	TrigChanO    TriggerSource = 0x10
	TrigChanP    TriggerSource = 0x11
)

func (t TriggerSource) String() string {
	switch t {
	case TrigExternal:
		return "External"
	case TrigDisable:
		return "Disable"
	}
	i, err := t.ChannelIndex()
	if err != nil {
		return fmt.Sprintf("TriggerSource(%#x)", uint32(t))
	}
	return fmt.Sprintf("Channel %c", rune('A'+i))
}

// ParseTriggerSource converts strings like "Channel A", "External" or
// "Disable" to a trigger source
func ParseTriggerSource(s string) (TriggerSource, error) {
	switch s {
	case "External":
		return TrigExternal, nil
	case "Disable":
		return TrigDisable, nil
	}
	var c rune
	if _, err := fmt.Sscanf(s, "Channel %c", &c); err == nil && c >= 'A' && c <= 'P' {
		i := int(c - 'A')
		// the source codes skip over External and Disable at 2 and 3
		if i > 1 {
			i += 2
		}
		return TriggerSource(i), nil
	}
	return 0, fmt.Errorf("%q is not a valid trigger source", s)
}

// ChannelIndex returns the zero-based input channel index (A=0, B=1, ...) for
// sources that watch an input channel
func (t TriggerSource) ChannelIndex() (int, error) {
	switch {
	case t == TrigExternal || t == TrigDisable:
		return 0, fmt.Errorf("trigger source %q is not an input channel", t)
	case t > TrigChanP:
		return 0, fmt.Errorf("unknown trigger source %d", uint32(t))
	case t > TrigDisable:
		return int(t) - 2, nil
	default:
		return int(t), nil
	}
}

// TriggerSlope selects the signal edge a trigger engine fires on.
type TriggerSlope uint32

// Trigger slopes from ALAZAR_TRIGGER_SLOPES
const (
	TriggerSlopePositive TriggerSlope = 1
	TriggerSlopeNegative TriggerSlope = 2
)

func (t TriggerSlope) String() string {
	if t == TriggerSlopeNegative {
		return "Negative"
	}
	return "Positive"
}

// ParseTriggerSlope converts "Positive" or "Negative" to a TriggerSlope
func ParseTriggerSlope(s string) (TriggerSlope, error) {
	switch s {
	case "Positive":
		return TriggerSlopePositive, nil
	case "Negative":
		return TriggerSlopeNegative, nil
	default:
		return 0, fmt.Errorf("%q is not a valid trigger slope", s)
	}
}

// ExternalTriggerRange is the full-scale range of the external trigger input.
type ExternalTriggerRange uint32

// External trigger ranges from ALAZAR_EXTERNAL_TRIGGER_RANGES
const (
	ETR5V50Ohm  ExternalTriggerRange = 0
	ETR1V50Ohm  ExternalTriggerRange = 1
	ETRTTL      ExternalTriggerRange = 2
	ETR2V550Ohm ExternalTriggerRange = 3
	ETR5V300Ohm ExternalTriggerRange = 4
)

var etrNames = map[ExternalTriggerRange]string{
	ETR5V50Ohm:  "±5 V, 50 Ω",
	ETR1V50Ohm:  "±1 V, 50 Ω",
	ETRTTL:      "TTL",
	ETR2V550Ohm: "±2.5 V, 50 Ω",
	ETR5V300Ohm: "±5 V, 300 Ω",
}

func (e ExternalTriggerRange) String() string {
	if s, ok := etrNames[e]; ok {
		return s
	}
	return fmt.Sprintf("ExternalTriggerRange(%d)", uint32(e))
}

// ParseExternalTriggerRange converts a string of the form returned by String
// to an external trigger range
func ParseExternalTriggerRange(s string) (ExternalTriggerRange, error) {
	for k, v := range etrNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid external trigger range", s)
}

// Volts returns the trigger range magnitude in volts.  The TTL range is 0-5V
// rather than bipolar.
func (e ExternalTriggerRange) Volts() float64 {
	switch e {
	case ETR1V50Ohm:
		return 1
	case ETR2V550Ohm:
		return 2.5
	default:
		return 5
	}
}
