// Package atshttp exposes a digitizer over HTTP
//
// The wrapper talks to anything implementing the Digitizer interface, which
// keeps it independent of the vendor library and testable against a mock.
// Payloads use the human-readable enum strings ("100 MS/s", "±400 mV") so a
// client never handles raw register codes.
package atshttp

import (
	"encoding/json"
	"net/http"

	"goji.io"
	"goji.io/pat"
	"golang.org/x/time/rate"

	"github.com/tweber225/atsbindings/ats"
	"github.com/tweber225/atsbindings/bsi"
	"github.com/tweber225/atsbindings/waveform"
)

// CaptureRequest describes one acquisition.
type CaptureRequest struct {
	// Channels is the number of inputs to acquire, starting from A
	Channels int `json:"channels"`

	// SamplesPerRecord is the record length
	SamplesPerRecord int `json:"samplesPerRecord"`

	// Records is the number of records to acquire
	Records int `json:"records"`

	// SampleRate is a rate string such as "100 MS/s"
	SampleRate string `json:"sampleRate"`

	// InputRange is a range string such as "±400 mV"
	InputRange string `json:"inputRange"`

	// Coupling is "AC" or "DC"
	Coupling string `json:"coupling"`

	// PackMode is "None", "8-bit" or "12-bit"
	PackMode string `json:"packMode"`
}

// Digitizer is the surface the HTTP layer needs from a board.
type Digitizer interface {
	// Model returns the board model
	Model() ats.BoardType

	// SerialNumber returns the board serial number
	SerialNumber() (uint32, error)

	// Info returns the board-specific capability table
	Info() (*bsi.Info, error)

	// Busy indicates an acquisition is in progress
	Busy() bool

	// Capture runs one acquisition and returns the decoded waveform
	Capture(CaptureRequest) (*waveform.Waveform, error)
}

// HTTPWrapper provides HTTP bindings on top of a Digitizer
// Bind must be called on it
type HTTPWrapper struct {
	// D is the underlying digitizer that is wrapped
	D Digitizer

	// RouteTable maps goji patterns to http handlers
	RouteTable map[goji.Pattern]http.HandlerFunc

	// limiter throttles capture requests, which monopolize the board
	limiter *rate.Limiter
}

// NewHTTPWrapper returns a new HTTP wrapper with the route table
// pre-configured.  capturesPerSecond throttles the capture route.
func NewHTTPWrapper(d Digitizer, capturesPerSecond float64) HTTPWrapper {
	w := HTTPWrapper{D: d, limiter: rate.NewLimiter(rate.Limit(capturesPerSecond), 1)}
	rt := map[goji.Pattern]http.HandlerFunc{
		pat.Get("/info"):         w.HTTPInfo,
		pat.Get("/busy"):         w.HTTPBusy,
		pat.Get("/capabilities"): w.HTTPCapabilities,
		pat.Post("/capture"):     w.HTTPCapture,
	}
	w.RouteTable = rt
	return w
}

// Bind adds the routes to a mux
func (h HTTPWrapper) Bind(m *goji.Mux) {
	for p, fcn := range h.RouteTable {
		m.HandleFunc(p, fcn)
	}
}

// Endpoints lists the route patterns bound by this wrapper
func (h HTTPWrapper) Endpoints() []string {
	out := make([]string, 0, len(h.RouteTable))
	for p := range h.RouteTable {
		if pp, ok := p.(*pat.Pattern); ok {
			out = append(out, pp.String())
		}
	}
	return out
}

// HTTPInfo returns the board model and serial number as JSON
func (h HTTPWrapper) HTTPInfo(w http.ResponseWriter, r *http.Request) {
	sn, err := h.D.SerialNumber()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	payload := struct {
		Model  string `json:"model"`
		Serial uint32 `json:"serial"`
	}{Model: h.D.Model().String(), Serial: sn}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HTTPBusy returns {"bool": b} with the board's busy state
func (h HTTPWrapper) HTTPBusy(w http.ResponseWriter, r *http.Request) {
	payload := struct {
		Bool bool `json:"bool"`
	}{Bool: h.D.Busy()}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HTTPCapabilities returns the board-specific table as human-readable lists
func (h HTTPWrapper) HTTPCapabilities(w http.ResponseWriter, r *http.Request) {
	info, err := h.D.Info()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rates, err := info.SampleRates()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rateStrs := make([]string, len(rates))
	for i, rt := range rates {
		rateStrs[i] = rt.String()
	}
	imps, err := info.InputImpedances()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	ranges := map[string][]string{}
	for _, imp := range imps {
		rs, err := info.InputRanges(imp)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		strs := make([]string, len(rs))
		for i, rr := range rs {
			strs[i] = rr.String()
		}
		ranges[imp.String()] = strs
	}
	payload := struct {
		Channels      int                 `json:"channels"`
		MinRecordSize int                 `json:"minRecordSize"`
		SampleRates   []string            `json:"sampleRates"`
		InputRanges   map[string][]string `json:"inputRanges"`
	}{
		Channels:      info.Channels,
		MinRecordSize: info.MinRecordSize,
		SampleRates:   rateStrs,
		InputRanges:   ranges,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HTTPCapture runs one acquisition and returns the waveform.  The response
// is JSON by default, or CSV with ?format=csv.  Requests beyond the rate
// limit are rejected with 429 rather than queued against the hardware.
func (h HTTPWrapper) HTTPCapture(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow() {
		http.Error(w, "capture rate limit exceeded", http.StatusTooManyRequests)
		return
	}
	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	if req.SampleRate != "" {
		if _, err := ats.ParseSampleRate(req.SampleRate); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.InputRange != "" {
		if _, err := ats.ParseInputRange(req.InputRange); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	wav, err := h.D.Capture(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		if err := wav.EncodeCSV(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	payload := struct {
		DT       float64              `json:"dt"`
		Channels map[string][]float64 `json:"channels"`
	}{DT: wav.DT, Channels: map[string][]float64{}}
	for name, ch := range wav.Channels {
		payload.Channels[name] = ch.Physical()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
