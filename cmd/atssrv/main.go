// Command atssrv exposes one or more digitizers over HTTP.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/grandcat/zeroconf"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"goji.io"

	yml "gopkg.in/yaml.v2"

	"github.com/tweber225/atsbindings/alazar"
	"github.com/tweber225/atsbindings/atshttp"
)

var (
	// Version is the version number.  Typically injected via ldflags with git build
	Version = "1"

	// ConfigFileName is what it sounds like
	ConfigFileName = "atssrv.yml"
	k              = koanf.New(".")
)

// BoardSetup describes one digitizer and where to mount it.
type BoardSetup struct {
	System int    `koanf:"system" yaml:"system"`
	Board  int    `koanf:"board" yaml:"board"`
	URL    string `koanf:"url" yaml:"url"`

	// CapturesPerSecond throttles the capture route
	CapturesPerSecond float64 `koanf:"capturesPerSecond" yaml:"capturesPerSecond"`
}

// Config is the top-level server configuration.
type Config struct {
	Addr     string       `koanf:"addr" yaml:"addr"`
	Zeroconf bool         `koanf:"zeroconf" yaml:"zeroconf"`
	Boards   []BoardSetup `koanf:"boards" yaml:"boards"`
}

func setupconfig() {
	k.Load(structs.Provider(Config{
		Addr: ":8000",
		Boards: []BoardSetup{
			{System: 1, Board: 1, URL: "/ats1", CapturesPerSecond: 2}}}, "koanf"), nil)
	if err := k.Load(file.Provider(ConfigFileName), yaml.Parser()); err != nil {
		errtxt := err.Error()
		if !strings.Contains(errtxt, "no such") { // file missing, who cares
			log.Fatalf("error loading config: %v", err)
		}
	}
}

func root() {
	str := `atssrv exposes AlazarTech digitizers over HTTP
This enables a server-client architecture, and the clients can leverage the
excellent HTTP libraries for any programming language.

Usage:
	atssrv <command>

Commands:
	run
	help
	mkconf
	conf
	version`
	fmt.Println(str)
}

func help() {
	str := `atssrv is amenable to configuration via its .yaml file.  For a primer on YAML, see
https://yaml.org/start.html

Each entry under boards names a digitizer by system and board ID and the URL
stem to mount it at.  No two boards can have the same URL.

Routes per board, under the configured stem:
	GET  /info          model and serial number
	GET  /busy          whether a capture is in progress
	GET  /capabilities  sample rates, input ranges, channel count
	POST /capture       run an acquisition, JSON body in, JSON or CSV out

Prometheus metrics are served at /metrics.  With zeroconf enabled the server
advertises itself as _ats._tcp on the local network.`
	fmt.Println(str)
}

func mkconf() {
	c := Config{}
	err := k.Unmarshal("", &c)
	if err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(ConfigFileName)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	err = yml.NewEncoder(f).Encode(c)
	if err != nil {
		log.Fatal(err)
	}
}

func printconf() {
	c := Config{}
	k.Unmarshal("", &c)
	err := yml.NewEncoder(os.Stdout).Encode(c)
	if err != nil {
		log.Fatal(err)
	}
}

func pversion() {
	fmt.Printf("atssrv version %v\n", Version)
}

// openBoard connects with retries.  The driver occasionally reports a
// transient failure right after system boot.
func openBoard(setup BoardSetup) (*alazar.Board, error) {
	var board *alazar.Board
	op := func() error {
		var err error
		board, err = alazar.Open(setup.System, setup.Board)
		return err
	}
	err := backoff.Retry(op, &backoff.ExponentialBackOff{
		InitialInterval:     100 * time.Millisecond,
		RandomizationFactor: 0.,
		Multiplier:          2.,
		MaxInterval:         2 * time.Second,
		MaxElapsedTime:      10 * time.Second,
		Clock:               backoff.SystemClock})
	return board, err
}

func stem(url string) string {
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return strings.TrimSuffix(url, "/")
}

func run() {
	c := Config{}
	err := k.Unmarshal("", &c)
	if err != nil {
		log.Fatal(err)
	}
	if len(c.Boards) == 0 {
		log.Fatal("no boards configured; run atssrv mkconf and edit the result")
	}
	prometheus.MustRegister(captureCounter)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Handle("/metrics", promhttp.Handler())
	for _, setup := range c.Boards {
		board, err := openBoard(setup)
		if err != nil {
			log.Fatalf("opening system %d board %d: %v", setup.System, setup.Board, err)
		}
		s := stem(setup.URL)
		d := &digitizer{board: board, label: strings.TrimPrefix(s, "/")}
		wrapper := atshttp.NewHTTPWrapper(d, setup.CapturesPerSecond)
		mux := goji.NewMux()
		wrapper.Bind(mux)
		r.Mount(s+"/", http.StripPrefix(s, mux))
		log.Printf("%s (S/N %d) available via HTTP at %s", d.Model(), mustSerial(d), s)
	}

	if c.Zeroconf {
		port := 80
		if i := strings.LastIndex(c.Addr, ":"); i >= 0 {
			if p, err := strconv.Atoi(c.Addr[i+1:]); err == nil {
				port = p
			}
		}
		host, _ := os.Hostname()
		server, err := zeroconf.Register("atssrv on "+host, "_ats._tcp", "local.",
			port, []string{"version=" + Version}, nil)
		if err != nil {
			log.Printf("zeroconf registration failed: %v", err)
		} else {
			defer server.Shutdown()
		}
	}

	log.Println("now listening for requests at", c.Addr)
	log.Fatal(http.ListenAndServe(c.Addr, r))
}

func mustSerial(d *digitizer) uint32 {
	sn, err := d.SerialNumber()
	if err != nil {
		return 0
	}
	return sn
}

func main() {
	var cmd string
	args := os.Args
	if len(args) == 1 {
		root()
		return
	}
	setupconfig()
	cmd = args[1]
	cmd = strings.ToLower(cmd)
	switch cmd {
	case "help":
		help()
		return
	case "mkconf":
		mkconf()
		return
	case "conf":
		printconf()
		return
	case "run":
		run()
		return
	case "version":
		pversion()
		return
	default:
		log.Fatal("unknown command")
	}
}
