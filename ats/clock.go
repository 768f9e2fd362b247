package ats

import (
	"fmt"
	"math"
)

// ClockSource selects the source of the sample clock.
type ClockSource uint32

// Clock sources from ALAZAR_CLOCK_SOURCES
const (
	InternalClock          ClockSource = 1
	FastExternalClock      ClockSource = 2
	MediumExternalClock    ClockSource = 3
	SlowExternalClock      ClockSource = 4
	ExternalClockAC        ClockSource = 5
	ExternalClockDC        ClockSource = 6
	ExternalClock10MHzRef  ClockSource = 7
	InternalClock10MHzRef  ClockSource = 8
	ExternalClock10MHzPXI  ClockSource = 10
)

var clockSourceNames = map[ClockSource]string{
	InternalClock:         "Internal Clock",
	FastExternalClock:     "Fast External Clock",
	MediumExternalClock:   "Medium External Clock",
	SlowExternalClock:     "Slow External Clock",
	ExternalClockAC:       "External Clock AC",
	ExternalClockDC:       "External Clock DC",
	ExternalClock10MHzRef: "External Clock 10MHz Ref",
	InternalClock10MHzRef: "Internal Clock 10MHz Ref",
	ExternalClock10MHzPXI: "External Clock 10MHz PXI",
}

func (c ClockSource) String() string {
	if s, ok := clockSourceNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ClockSource(%d)", uint32(c))
}

// ParseClockSource converts a human-readable clock source string, as returned
// by String, to its enumeration value
func ParseClockSource(s string) (ClockSource, error) {
	for k, v := range clockSourceNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid clock source", s)
}

// ClockEdge selects which edge of the sample clock latches data.
type ClockEdge uint32

// Clock edges from ALAZAR_CLOCK_EDGES
const (
	ClockEdgeRising  ClockEdge = 0
	ClockEdgeFalling ClockEdge = 1
)

func (c ClockEdge) String() string {
	if c == ClockEdgeFalling {
		return "Falling"
	}
	return "Rising"
}

// ParseClockEdge converts "Rising" or "Falling" to a ClockEdge
func ParseClockEdge(s string) (ClockEdge, error) {
	switch s {
	case "Rising":
		return ClockEdgeRising, nil
	case "Falling":
		return ClockEdgeFalling, nil
	default:
		return 0, fmt.Errorf("%q is not a valid clock edge", s)
	}
}

// SampleRate is an internally generated sample rate code.
type SampleRate uint32

// Sample rates from ALAZAR_SAMPLE_RATES.  The two RecurDecimal rates are not
// exact thirds; Hertz returns the conventional rounded values.
const (
	SampleRate1KSPS               SampleRate = 0x01
	SampleRate2KSPS               SampleRate = 0x02
	SampleRate5KSPS               SampleRate = 0x04
	SampleRate10KSPS              SampleRate = 0x08
	SampleRate20KSPS              SampleRate = 0x0A
	SampleRate50KSPS              SampleRate = 0x0C
	SampleRate100KSPS             SampleRate = 0x0E
	SampleRate200KSPS             SampleRate = 0x10
	SampleRate500KSPS             SampleRate = 0x12
	SampleRate1MSPS               SampleRate = 0x14
	SampleRate2MSPS               SampleRate = 0x18
	SampleRate5MSPS               SampleRate = 0x1A
	SampleRate10MSPS              SampleRate = 0x1C
	SampleRate20MSPS              SampleRate = 0x1E
	SampleRate25MSPS              SampleRate = 0x21
	SampleRate50MSPS              SampleRate = 0x22
	SampleRate100MSPS             SampleRate = 0x24
	SampleRate125MSPS             SampleRate = 0x25
	SampleRate160MSPS             SampleRate = 0x26
	SampleRate180MSPS             SampleRate = 0x27
	SampleRate200MSPS             SampleRate = 0x28
	SampleRate250MSPS             SampleRate = 0x2B
	SampleRate300MSPS             SampleRate = 0x90
	SampleRate350MSPS             SampleRate = 0x94
	SampleRate370MSPS             SampleRate = 0x96
	SampleRate400MSPS             SampleRate = 0x2D
	SampleRate500MSPS             SampleRate = 0x30
	SampleRate800MSPS             SampleRate = 0x32
	SampleRate1000MSPS            SampleRate = 0x35
	SampleRate1200MSPS            SampleRate = 0x37
	SampleRate1333MSPSRecurDec    SampleRate = 0xC0
	SampleRate1500MSPS            SampleRate = 0x3A
	SampleRate1600MSPS            SampleRate = 0x3B
	SampleRate1800MSPS            SampleRate = 0x3D
	SampleRate2000MSPS            SampleRate = 0x3F
	SampleRate2400MSPS            SampleRate = 0x6A
	SampleRate2666MSPSRecurDec    SampleRate = 0xC1
	SampleRate3000MSPS            SampleRate = 0x75
	SampleRate3600MSPS            SampleRate = 0x7B
	SampleRate4000MSPS            SampleRate = 0x80
	SampleRate5000MSPS            SampleRate = 0xA0
	SampleRate10000MSPS           SampleRate = 0xB0
	SampleRateUserDef             SampleRate = 0x40
)

// sampleRateHertz holds the rate in Hz for every internally generated rate.
// SampleRateUserDef has no entry; its rate comes from the external clock.
var sampleRateHertz = map[SampleRate]int{
	SampleRate1KSPS:            1000,
	SampleRate2KSPS:            2000,
	SampleRate5KSPS:            5000,
	SampleRate10KSPS:           10000,
	SampleRate20KSPS:           20000,
	SampleRate50KSPS:           50000,
	SampleRate100KSPS:          100000,
	SampleRate200KSPS:          200000,
	SampleRate500KSPS:          500000,
	SampleRate1MSPS:            1000000,
	SampleRate2MSPS:            2000000,
	SampleRate5MSPS:            5000000,
	SampleRate10MSPS:           10000000,
	SampleRate20MSPS:           20000000,
	SampleRate25MSPS:           25000000,
	SampleRate50MSPS:           50000000,
	SampleRate100MSPS:          100000000,
	SampleRate125MSPS:          125000000,
	SampleRate160MSPS:          160000000,
	SampleRate180MSPS:          180000000,
	SampleRate200MSPS:          200000000,
	SampleRate250MSPS:          250000000,
	SampleRate300MSPS:          300000000,
	SampleRate350MSPS:          350000000,
	SampleRate370MSPS:          370000000,
	SampleRate400MSPS:          400000000,
	SampleRate500MSPS:          500000000,
	SampleRate800MSPS:          800000000,
	SampleRate1000MSPS:         1000000000,
	SampleRate1200MSPS:         1200000000,
	SampleRate1333MSPSRecurDec: 1333333333,
	SampleRate1500MSPS:         1500000000,
	SampleRate1600MSPS:         1600000000,
	SampleRate1800MSPS:         1800000000,
	SampleRate2000MSPS:         2000000000,
	SampleRate2400MSPS:         2400000000,
	SampleRate2666MSPSRecurDec: 2666666667,
	SampleRate3000MSPS:         3000000000,
	SampleRate3600MSPS:         3600000000,
	SampleRate4000MSPS:         4000000000,
	SampleRate5000MSPS:         5000000000,
	SampleRate10000MSPS:        10000000000,
}

// SampleRateFromHertz returns the rate code for a rate in Hz, or an error if
// the boards do not generate that rate internally
func SampleRateFromHertz(hz int) (SampleRate, error) {
	for k, v := range sampleRateHertz {
		if v == hz {
			return k, nil
		}
	}
	return 0, fmt.Errorf("no matching sample rate for %d Hz", hz)
}

// Hertz returns the sample rate in Hz, or 0 for SampleRateUserDef
func (s SampleRate) Hertz() int {
	return sampleRateHertz[s]
}

func (s SampleRate) String() string {
	h := s.Hertz()
	switch {
	case h == 0:
		return "User defined"
	case h < 1000000:
		return fmt.Sprintf("%d kS/s", h/1000)
	case h < 1000000000:
		return fmt.Sprintf("%d MS/s", h/1000000)
	default:
		return fmt.Sprintf("%.1f GS/s", float64(h)/1e9)
	}
}

// ParseSampleRate converts strings like "20 kS/s", "125 MS/s" or "1.8 GS/s"
// to the matching rate code
func ParseSampleRate(s string) (SampleRate, error) {
	var (
		v    float64
		unit string
	)
	if _, err := fmt.Sscanf(s, "%f %s", &v, &unit); err != nil {
		return 0, fmt.Errorf("%q is not a valid sample rate string", s)
	}
	var scale float64
	switch unit {
	case "kS/s":
		scale = 1e3
	case "MS/s":
		scale = 1e6
	case "GS/s":
		scale = 1e9
	default:
		return 0, fmt.Errorf("invalid sample rate unit %q", unit)
	}
	return SampleRateFromHertz(int(math.Round(v * scale)))
}
