package waveform

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes one channel in physical units.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	PkPk   float64
}

// Summarize computes summary statistics for a channel.
func (c Channel) Summarize() Stats {
	p := c.Physical()
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range p {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean, std := stat.MeanStdDev(p, nil)
	return Stats{
		Mean:   mean,
		StdDev: std,
		Min:    min,
		Max:    max,
		PkPk:   max - min,
	}
}

// Spectrum is a one-sided power spectrum.
type Spectrum struct {
	// Freqs holds the bin center frequencies in Hz
	Freqs []float64

	// Power holds the squared magnitude per bin, normalized so a
	// full-scale sine lands near its amplitude squared over two
	Power []float64
}

// PowerSpectrum computes the one-sided power spectrum of a channel using the
// waveform's sample spacing.
func (wav *Waveform) PowerSpectrum(name string) (Spectrum, error) {
	ch, ok := wav.Channels[name]
	if !ok {
		return Spectrum{}, errNoChannel(name)
	}
	p := ch.Physical()
	n := len(p)
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, p)

	sp := Spectrum{
		Freqs: make([]float64, len(coeff)),
		Power: make([]float64, len(coeff)),
	}
	fs := 0.0
	if wav.DT > 0 {
		fs = 1 / wav.DT
	}
	for i, c := range coeff {
		sp.Freqs[i] = float64(i) * fs / float64(n)
		re, im := real(c), imag(c)
		sp.Power[i] = (re*re + im*im) / float64(n*n)
		if i != 0 && i != len(coeff)-1 {
			// fold the negative frequencies into the one-sided bins
			sp.Power[i] *= 2
		}
	}
	return sp, nil
}

// Peak returns the frequency and power of the strongest non-DC bin.
func (s Spectrum) Peak() (freq, power float64) {
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > power {
			power = s.Power[i]
			freq = s.Freqs[i]
		}
	}
	return freq, power
}

type errNoChannel string

func (e errNoChannel) Error() string {
	return "waveform: no channel named " + string(e)
}
