package main

import (
	"flag"
	"log"
	"time"

	"github.com/tweber225/atsbindings/alazar"
	"github.com/tweber225/atsbindings/ats"
)

// blinking the LED is the "hello world" equivalent for hardware,
// recommended as the initial test of a new install

func main() {
	var (
		system   = flag.Int("system", 1, "system ID of the board")
		board    = flag.Int("board", 1, "board ID within the system")
		period   = flag.Duration("period", 330*time.Millisecond, "full on/off cycle time")
		duration = flag.Duration("duration", 7*time.Second, "how long to blink")
	)
	flag.Parse()

	b, err := alazar.Open(*system, *board)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("blinking %s for %v", b.BoardKind(), *duration)
	t0 := time.Now()
	for time.Since(t0) < *duration {
		if err := b.SetLED(ats.LEDOn); err != nil {
			log.Fatal(err)
		}
		time.Sleep(*period / 2)
		if err := b.SetLED(ats.LEDOff); err != nil {
			log.Fatal(err)
		}
		time.Sleep(*period / 2)
	}
}
