package bsi

import (
	"testing"

	"github.com/tweber225/atsbindings/ats"
)

func TestForKnownBoard(t *testing.T) {
	info, err := For(ats.ATS9462)
	if err != nil {
		t.Fatalf("For(ATS9462): %v", err)
	}
	if info.Channels != 2 {
		t.Errorf("Channels = %d, want 2", info.Channels)
	}
	if info.MinRecordSize != 256 {
		t.Errorf("MinRecordSize = %d, want 256", info.MinRecordSize)
	}
	if info.PretrigAlignment != 64 {
		t.Errorf("PretrigAlignment = %d, want 64", info.PretrigAlignment)
	}
}

func TestForUnknownBoard(t *testing.T) {
	if _, err := For(ats.ATS9000); err == nil {
		t.Error("expected an error for a board absent from the table")
	}
}

func TestInputImpedances(t *testing.T) {
	info, err := For(ats.ATS9462)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	imps, err := info.InputImpedances()
	if err != nil {
		t.Fatalf("InputImpedances: %v", err)
	}
	found := map[ats.Impedance]bool{}
	for _, imp := range imps {
		found[imp] = true
	}
	if !found[ats.Impedance50Ohm] || !found[ats.Impedance1MOhm] {
		t.Errorf("impedances = %v, want 50 Ohm and 1 MOhm", imps)
	}
}

func TestInputRanges(t *testing.T) {
	info, err := For(ats.ATS9870)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	ranges, err := info.InputRanges(ats.Impedance50Ohm)
	if err != nil {
		t.Fatalf("InputRanges: %v", err)
	}
	want := []ats.InputRange{
		ats.InputRangePM40mV, ats.InputRangePM100mV, ats.InputRangePM200mV,
		ats.InputRangePM400mV, ats.InputRangePM1V, ats.InputRangePM2V,
		ats.InputRangePM4V,
	}
	if len(ranges) != len(want) {
		t.Fatalf("got %d ranges, want %d", len(ranges), len(want))
	}
	for i := range want {
		if ranges[i] != want[i] {
			t.Errorf("range %d = %v, want %v", i, ranges[i], want[i])
		}
	}
	if _, err := info.InputRanges(ats.Impedance1MOhm); err == nil {
		t.Error("the ATS9870 has no 1 MOhm termination, expected an error")
	}
}

func TestSampleRates(t *testing.T) {
	info, err := For(ats.ATS9870)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	rates, err := info.SampleRates()
	if err != nil {
		t.Fatalf("SampleRates: %v", err)
	}
	top := rates[len(rates)-1]
	if top != ats.SampleRate1000MSPS {
		t.Errorf("fastest rate = %v, want %v", top, ats.SampleRate1000MSPS)
	}
}

func TestSamplesPerTimestamp(t *testing.T) {
	info, err := For(ats.ATS9350)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	one, err := info.SamplesPerTimestamp(1)
	if err != nil {
		t.Fatalf("SamplesPerTimestamp(1): %v", err)
	}
	two, err := info.SamplesPerTimestamp(2)
	if err != nil {
		t.Fatalf("SamplesPerTimestamp(2): %v", err)
	}
	if one != 4 || two != 8 {
		t.Errorf("samples per timestamp = %d, %d, want 4, 8", one, two)
	}
	if _, err := info.SamplesPerTimestamp(3); err == nil {
		t.Error("expected an error for a channel count without an entry")
	}
}

func TestChannelConfigs(t *testing.T) {
	info, err := For(ats.ATS9440)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	configs := info.ChannelConfigs()
	found := map[ats.Channel]bool{}
	for _, c := range configs {
		found[c] = true
	}
	all := ats.ChannelA | ats.ChannelB | ats.ChannelC | ats.ChannelD
	if !found[ats.ChannelA] || !found[all] {
		t.Errorf("configs = %v, want channel A alone and all four together", configs)
	}
}

func TestExternalTriggerRanges(t *testing.T) {
	info, err := For(ats.ATS9872)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	ranges, err := info.ExternalTriggerRanges()
	if err != nil {
		t.Fatalf("ExternalTriggerRanges: %v", err)
	}
	if len(ranges) != 2 || ranges[0] != ats.ETR2V550Ohm || ranges[1] != ats.ETRTTL {
		t.Errorf("ranges = %v, want [ETR2V550Ohm ETRTTL]", ranges)
	}
}

func TestSupportedClocks(t *testing.T) {
	info, err := For(ats.ATS9462)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	clocks := info.SupportedClocks()
	found := map[ats.ClockSource]bool{}
	for _, c := range clocks {
		found[c] = true
	}
	for _, want := range []ats.ClockSource{
		ats.InternalClock, ats.FastExternalClock, ats.SlowExternalClock,
		ats.ExternalClockAC, ats.ExternalClock10MHzRef,
	} {
		if !found[want] {
			t.Errorf("supported clocks missing %v", want)
		}
	}
}

func TestExternalClockFrequencyRange(t *testing.T) {
	info, err := For(ats.ATS9462)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	lo, hi, err := info.ExternalClockFrequencyRange(ats.FastExternalClock)
	if err != nil {
		t.Fatalf("ExternalClockFrequencyRange: %v", err)
	}
	if lo != 1e6 || hi != 180e6 {
		t.Errorf("fast clock limits = %g..%g, want 1e6..180e6", lo, hi)
	}
	if _, _, err := info.ExternalClockFrequencyRange(ats.ExternalClockDC); err == nil {
		t.Error("expected an error for an unsupported clock source")
	}
}

func TestBoards(t *testing.T) {
	boards, err := Boards()
	if err != nil {
		t.Fatalf("Boards: %v", err)
	}
	found := map[ats.BoardType]bool{}
	for _, b := range boards {
		found[b] = true
	}
	for _, want := range []ats.BoardType{ats.ATS310, ats.ATS9440, ats.ATS9870, ats.ATS9872} {
		if !found[want] {
			t.Errorf("Boards() missing %v", want)
		}
	}
}
