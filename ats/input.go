package ats

import "fmt"

// Channel is a bitmask identifying one or more input channels.
type Channel uint32

// Channels from ALAZAR_CHANNELS.  ChannelAll addresses every channel at once
// in calls that accept it, e.g. SetParameter.
const ChannelAll Channel = 0

const (
	ChannelA Channel = 1 << iota
	ChannelB
	ChannelC
	ChannelD
	ChannelE
	ChannelF
	ChannelG
	ChannelH
	ChannelI
	ChannelJ
	ChannelK
	ChannelL
	ChannelM
	ChannelN
	ChannelO
	ChannelP
)

// ChannelFromIndex returns the channel at an alphabetical position,
// e.g. 0 -> A, 1 -> B
func ChannelFromIndex(i int) (Channel, error) {
	if i < 0 || i > 15 {
		return 0, fmt.Errorf("channel index %d out of range [0,15]", i)
	}
	return Channel(1 << uint(i)), nil
}

func (c Channel) String() string {
	if c == ChannelAll {
		return "All"
	}
	for i := 0; i < 16; i++ {
		if c == Channel(1)<<uint(i) {
			return string(rune('A' + i))
		}
	}
	return fmt.Sprintf("Channel(%#x)", uint32(c))
}

// Count returns the number of channels set in the mask
func (c Channel) Count() int {
	n := 0
	for v := uint32(c); v != 0; v >>= 1 {
		n += int(v & 1)
	}
	return n
}

// Coupling is an input coupling mode.
type Coupling uint32

// Couplings from ALAZAR_COUPLINGS
const (
	CouplingAC Coupling = 1
	CouplingDC Coupling = 2
)

func (c Coupling) String() string {
	if c == CouplingAC {
		return "AC"
	}
	return "DC"
}

// ParseCoupling converts "AC" or "DC" to a Coupling
func ParseCoupling(s string) (Coupling, error) {
	switch s {
	case "AC":
		return CouplingAC, nil
	case "DC":
		return CouplingDC, nil
	default:
		return 0, fmt.Errorf("%q is not a valid coupling", s)
	}
}

// InputRange is a full-scale bipolar input range code.
type InputRange uint32

// Input ranges from ALAZAR_INPUT_RANGES.  The unipolar ranges some boards
// support are not included.
const (
	InputRangePM20mV  InputRange = 0x01
	InputRangePM40mV  InputRange = 0x02
	InputRangePM50mV  InputRange = 0x03
	InputRangePM80mV  InputRange = 0x04
	InputRangePM100mV InputRange = 0x05
	InputRangePM125mV InputRange = 0x28
	InputRangePM200mV InputRange = 0x06
	InputRangePM250mV InputRange = 0x30
	InputRangePM400mV InputRange = 0x07
	InputRangePM500mV InputRange = 0x08
	InputRangePM560mV InputRange = 0x62
	InputRangePM800mV InputRange = 0x09
	InputRangePM1V    InputRange = 0x0A
	InputRangePM1V25  InputRange = 0x21
	InputRangePM2V    InputRange = 0x0B
	InputRangePM2V5   InputRange = 0x25
	InputRangePM4V    InputRange = 0x0C
	InputRangePM5V    InputRange = 0x0D
	InputRangePM8V    InputRange = 0x0E
	InputRangePM10V   InputRange = 0x0F
	InputRangePM16V   InputRange = 0x12
	InputRangePM20V   InputRange = 0x10
	InputRangePM40V   InputRange = 0x11
)

var inputRangeVolts = map[InputRange]float64{
	InputRangePM20mV:  0.02,
	InputRangePM40mV:  0.04,
	InputRangePM50mV:  0.05,
	InputRangePM80mV:  0.08,
	InputRangePM100mV: 0.1,
	InputRangePM125mV: 0.125,
	InputRangePM200mV: 0.2,
	InputRangePM250mV: 0.25,
	InputRangePM400mV: 0.4,
	InputRangePM500mV: 0.5,
	InputRangePM560mV: 0.56,
	InputRangePM800mV: 0.8,
	InputRangePM1V:    1,
	InputRangePM1V25:  1.25,
	InputRangePM2V:    2,
	InputRangePM2V5:   2.5,
	InputRangePM4V:    4,
	InputRangePM5V:    5,
	InputRangePM8V:    8,
	InputRangePM10V:   10,
	InputRangePM16V:   16,
	InputRangePM20V:   20,
	InputRangePM40V:   40,
}

// InputRangeFromVolts returns the range code whose full scale is +/- v volts
func InputRangeFromVolts(v float64) (InputRange, error) {
	for k, volts := range inputRangeVolts {
		if volts == v {
			return k, nil
		}
	}
	return 0, fmt.Errorf("no matching input range for %g V", v)
}

// Volts returns the full-scale magnitude of the range in volts
func (r InputRange) Volts() float64 {
	return inputRangeVolts[r]
}

func (r InputRange) String() string {
	v := r.Volts()
	if v == 0 {
		return fmt.Sprintf("InputRange(%#x)", uint32(r))
	}
	if v < 1 {
		return fmt.Sprintf("±%g mV", v*1000)
	}
	return fmt.Sprintf("±%g V", v)
}

// ParseInputRange converts strings like "±400 mV" or "±2.5 V" to the matching
// range code
func ParseInputRange(s string) (InputRange, error) {
	var (
		v    float64
		unit string
	)
	if _, err := fmt.Sscanf(s, "±%f %s", &v, &unit); err != nil {
		return 0, fmt.Errorf("%q is not a valid input range string", s)
	}
	switch unit {
	case "mV":
		return InputRangeFromVolts(v / 1000)
	case "V":
		return InputRangeFromVolts(v)
	default:
		return 0, fmt.Errorf("invalid input range unit %q", unit)
	}
}

// Impedance is an input termination code.
type Impedance uint32

// Impedances from ALAZAR_IMPEDANCES
const (
	Impedance1MOhm  Impedance = 1
	Impedance50Ohm  Impedance = 2
	Impedance75Ohm  Impedance = 4
	Impedance300Ohm Impedance = 8
)

var impedanceOhms = map[Impedance]int{
	Impedance1MOhm:  1000000,
	Impedance50Ohm:  50,
	Impedance75Ohm:  75,
	Impedance300Ohm: 300,
}

// ImpedanceFromOhms returns the impedance code for a termination in ohms
func ImpedanceFromOhms(ohms int) (Impedance, error) {
	for k, v := range impedanceOhms {
		if v == ohms {
			return k, nil
		}
	}
	return 0, fmt.Errorf("no matching input impedance for %d ohms", ohms)
}

// Ohms returns the termination in ohms
func (i Impedance) Ohms() int {
	return impedanceOhms[i]
}

func (i Impedance) String() string {
	if i == Impedance1MOhm {
		return "1 MΩ"
	}
	return fmt.Sprintf("%d Ω", i.Ohms())
}
