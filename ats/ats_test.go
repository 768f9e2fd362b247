package ats

import "testing"

func TestReturnCodeError(t *testing.T) {
	if err := Error(uint32(ApiSuccess)); err != nil {
		t.Errorf("ApiSuccess should map to a nil error, got %v", err)
	}
	err := Error(513)
	if err == nil {
		t.Fatal("ApiFailed should map to a non-nil error")
	}
	if err.Error() != "513 - ApiFailed" {
		t.Errorf("expected 513 - ApiFailed, got %q", err.Error())
	}
}

func TestReturnCodeUnknown(t *testing.T) {
	rc := ReturnCode(9999)
	if rc.Error() == "" {
		t.Error("unknown return codes should still render")
	}
}

func TestSampleRateRoundTrip(t *testing.T) {
	rates := []int{1000, 1000000, 125000000, 500000000, 1800000000}
	for _, hz := range rates {
		sr, err := SampleRateFromHertz(hz)
		if err != nil {
			t.Errorf("SampleRateFromHertz(%d): %v", hz, err)
			continue
		}
		if got := sr.Hertz(); got != hz {
			t.Errorf("round trip of %d Hz gave %d Hz", hz, got)
		}
	}
}

func TestSampleRateFromHertzUnknown(t *testing.T) {
	if _, err := SampleRateFromHertz(12345); err == nil {
		t.Error("expected an error for an unsupported rate")
	}
}

func TestSampleRateString(t *testing.T) {
	cases := map[SampleRate]string{
		SampleRate20KSPS:   "20 kS/s",
		SampleRate125MSPS:  "125 MS/s",
		SampleRate1800MSPS: "1.8 GS/s",
	}
	for sr, want := range cases {
		if got := sr.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", sr, got, want)
		}
	}
}

func TestParseSampleRate(t *testing.T) {
	for _, s := range []string{"20 kS/s", "125 MS/s", "1.8 GS/s"} {
		sr, err := ParseSampleRate(s)
		if err != nil {
			t.Errorf("ParseSampleRate(%q): %v", s, err)
			continue
		}
		if sr.String() != s {
			t.Errorf("parse/print of %q gave %q", s, sr.String())
		}
	}
}

func TestChannelFlags(t *testing.T) {
	if ChannelA != 1 || ChannelB != 2 || ChannelC != 4 {
		t.Errorf("channel flags misnumbered: A=%d B=%d C=%d", ChannelA, ChannelB, ChannelC)
	}
	mask := ChannelA | ChannelC | ChannelD
	if mask.Count() != 3 {
		t.Errorf("Count of A|C|D = %d, want 3", mask.Count())
	}
}

func TestChannelFromIndex(t *testing.T) {
	for i := 0; i < 16; i++ {
		ch, err := ChannelFromIndex(i)
		if err != nil {
			t.Errorf("ChannelFromIndex(%d): %v", i, err)
			continue
		}
		if ch != 1<<uint(i) {
			t.Errorf("ChannelFromIndex(%d) = %d, want %d", i, ch, 1<<uint(i))
		}
	}
	if _, err := ChannelFromIndex(16); err == nil {
		t.Error("expected an error for index 16")
	}
}

// building an enable mask from the first n indices is how the acquisition
// code selects channels
func TestChannelMaskFromIndices(t *testing.T) {
	var mask Channel
	for i := 0; i < 3; i++ {
		ch, err := ChannelFromIndex(i)
		if err != nil {
			t.Fatalf("ChannelFromIndex(%d): %v", i, err)
		}
		mask |= ch
	}
	if mask != ChannelA|ChannelB|ChannelC {
		t.Errorf("mask = %d, want %d", mask, ChannelA|ChannelB|ChannelC)
	}
	if mask.Count() != 3 {
		t.Errorf("Count = %d, want 3", mask.Count())
	}
}

func TestInputRangeVolts(t *testing.T) {
	cases := map[InputRange]float64{
		InputRangePM40mV:  0.04,
		InputRangePM400mV: 0.4,
		InputRangePM2V5:   2.5,
		InputRangePM4V:    4,
	}
	for ir, want := range cases {
		if got := ir.Volts(); got != want {
			t.Errorf("%v.Volts() = %v, want %v", ir, got, want)
		}
		back, err := InputRangeFromVolts(want)
		if err != nil {
			t.Errorf("InputRangeFromVolts(%v): %v", want, err)
			continue
		}
		if back != ir {
			t.Errorf("InputRangeFromVolts(%v) = %v, want %v", want, back, ir)
		}
	}
}

func TestParseInputRange(t *testing.T) {
	for _, s := range []string{"±400 mV", "±2.5 V", "±16 V"} {
		ir, err := ParseInputRange(s)
		if err != nil {
			t.Errorf("ParseInputRange(%q): %v", s, err)
			continue
		}
		if ir.String() != s {
			t.Errorf("parse/print of %q gave %q", s, ir.String())
		}
	}
}

func TestImpedanceOhms(t *testing.T) {
	cases := map[Impedance]int{
		Impedance1MOhm:  1000000,
		Impedance50Ohm:  50,
		Impedance75Ohm:  75,
		Impedance300Ohm: 300,
	}
	for imp, ohms := range cases {
		if got := imp.Ohms(); got != ohms {
			t.Errorf("%v.Ohms() = %d, want %d", imp, got, ohms)
		}
		back, err := ImpedanceFromOhms(ohms)
		if err != nil {
			t.Errorf("ImpedanceFromOhms(%d): %v", ohms, err)
			continue
		}
		if back != imp {
			t.Errorf("ImpedanceFromOhms(%d) = %v, want %v", ohms, back, imp)
		}
	}
}

func TestTriggerSourceChannelIndex(t *testing.T) {
	cases := []struct {
		src  TriggerSource
		want int
	}{
		{TrigChanA, 0},
		{TrigChanB, 1},
		{TrigChanC, 2},
		{TrigChanD, 3},
		{TrigChanP, 15},
	}
	for _, tc := range cases {
		got, err := tc.src.ChannelIndex()
		if err != nil {
			t.Errorf("%v.ChannelIndex(): %v", tc.src, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%v.ChannelIndex() = %d, want %d", tc.src, got, tc.want)
		}
	}
	if _, err := TrigExternal.ChannelIndex(); err == nil {
		t.Error("external trigger should not have a channel index")
	}
	if _, err := TrigDisable.ChannelIndex(); err == nil {
		t.Error("disabled trigger should not have a channel index")
	}
}

func TestPackModeStrings(t *testing.T) {
	cases := map[PackMode]string{
		PackDefault:         "None",
		Pack8BitsPerSample:  "8-bit",
		Pack12BitsPerSample: "12-bit",
	}
	for pm, want := range cases {
		if got := pm.String(); got != want {
			t.Errorf("PackMode(%d).String() = %q, want %q", pm, got, want)
		}
		back, err := ParsePackMode(want)
		if err != nil {
			t.Errorf("ParsePackMode(%q): %v", want, err)
			continue
		}
		if back != pm {
			t.Errorf("ParsePackMode(%q) = %d, want %d", want, back, pm)
		}
	}
}

func TestADMAModeRoundTrip(t *testing.T) {
	for _, m := range []ADMAMode{ADMATraditional, ADMAContinuous, ADMANPT, ADMATriggeredStreaming} {
		back, err := ParseADMAMode(m.String())
		if err != nil {
			t.Errorf("ParseADMAMode(%q): %v", m.String(), err)
			continue
		}
		if back != m {
			t.Errorf("round trip of %v gave %v", m, back)
		}
	}
}

func TestBoardTypeRoundTrip(t *testing.T) {
	for _, b := range []BoardType{ATS310, ATS9462, ATS9870, ATS9373, ATS9872} {
		back, err := ParseBoardType(b.String())
		if err != nil {
			t.Errorf("ParseBoardType(%q): %v", b.String(), err)
			continue
		}
		if back != b {
			t.Errorf("round trip of %v gave %v", b, back)
		}
	}
}

func TestExternalTriggerRange(t *testing.T) {
	cases := map[ExternalTriggerRange]float64{
		ETR5V50Ohm:  5,
		ETR1V50Ohm:  1,
		ETR2V550Ohm: 2.5,
	}
	for etr, want := range cases {
		if got := etr.Volts(); got != want {
			t.Errorf("%v.Volts() = %v, want %v", etr, got, want)
		}
	}
	back, err := ParseExternalTriggerRange("TTL")
	if err != nil {
		t.Fatalf("ParseExternalTriggerRange(TTL): %v", err)
	}
	if back != ETRTTL {
		t.Errorf("ParseExternalTriggerRange(TTL) = %v, want %v", back, ETRTTL)
	}
}
