package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/theckman/yacspin"

	"github.com/tweber225/atsbindings/alazar"
	"github.com/tweber225/atsbindings/ats"
	"github.com/tweber225/atsbindings/bsi"
)

var (
	heading = color.New(color.FgHiCyan, color.Bold).SprintFunc()
	value   = color.New(color.FgGreen).SprintFunc()
)

func spinner(msg string) *yacspin.Spinner {
	cfg := yacspin.Config{
		Frequency:     100 * time.Millisecond,
		CharSet:       yacspin.CharSets[59],
		Suffix:        " " + msg,
		StopCharacter: "✓",
		StopColors:    []string{"fgGreen"},
	}
	s, err := yacspin.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	return s
}

func main() {
	var (
		system = flag.Int("system", 1, "system ID of the board")
		board  = flag.Int("board", 1, "board ID within the system")
	)
	flag.Parse()

	s := spinner("connecting to digitizer")
	s.Start()
	b, err := alazar.Open(*system, *board)
	if err != nil {
		s.StopFail()
		log.Fatal(err)
	}
	sn, err := b.SerialNumber()
	if err != nil {
		s.StopFail()
		log.Fatal(err)
	}
	memSamples, bits, err := b.ChannelInfo()
	if err != nil {
		s.StopFail()
		log.Fatal(err)
	}
	s.Stop()

	kind := b.BoardKind()
	fmt.Printf("%s %s (S/N: %d)\n", heading("Board model:"), value(kind), sn)
	fmt.Printf("%s %d samples of on-board memory, %d bits per sample\n",
		heading("Memory:"), memSamples, bits)
	if sdk, err := alazar.SDKVersion(); err == nil {
		fmt.Printf("%s %s\n", heading("SDK:"), sdk)
	}
	if drv, err := alazar.DriverVersion(); err == nil {
		fmt.Printf("%s %s\n", heading("Driver:"), drv)
	}

	info, err := bsi.For(kind)
	if err != nil {
		log.Fatal(err)
	}
	rates, err := info.SampleRates()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nThis board features %s channels, which may be sampled at rates as low as %s or as high as %s.\n",
		value(info.Channels), value(rates[0]), value(rates[len(rates)-1]))

	imps, err := info.InputImpedances()
	if err != nil {
		log.Fatal(err)
	}
	impStrs := make([]string, len(imps))
	for i, imp := range imps {
		impStrs[i] = imp.String()
	}
	fmt.Printf("%s %s\n", heading("Input impedance options:"), strings.Join(impStrs, ", "))

	ranges, err := info.InputRanges(imps[0])
	if err != nil {
		log.Fatal(err)
	}
	if len(ranges) == 1 {
		fmt.Printf("With input impedance %s, the fixed input range is %s\n",
			value(imps[0]), value(ranges[0]))
	} else {
		fmt.Printf("With input impedance %s, the narrowest input range is %s and widest is %s\n",
			value(imps[0]), value(ranges[0]), value(ranges[len(ranges)-1]))
	}

	etrs, err := info.ExternalTriggerRanges()
	if err != nil {
		log.Fatal(err)
	}
	etrStrs := make([]string, len(etrs))
	for i, r := range etrs {
		etrStrs[i] = r.String()
	}
	fmt.Printf("%s %s\n", heading("External trigger ranges:"), strings.Join(etrStrs, ", "))

	clks := info.SupportedClocks()
	clkStrs := make([]string, len(clks))
	for i, c := range clks {
		clkStrs[i] = c.String()
	}
	fmt.Printf("%s %s\n", heading("Supported clocks:"), strings.Join(clkStrs, ", "))
	if len(clks) > 1 {
		min, max, err := info.ExternalClockFrequencyRange(clks[1])
		if err == nil {
			fmt.Printf("The supported frequency range for %s is %s to %s Hz\n",
				value(clks[1]), value(min), value(max))
		}
	}

	if packed, err := b.QueryCapability(ats.CapSupport12BitPacking); err == nil && packed != 0 {
		fmt.Println("The board supports 12-bit packed transfers")
	}
}
