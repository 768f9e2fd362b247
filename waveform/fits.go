package waveform

import (
	"fmt"
	"io"

	"github.com/astrogo/fitsio"
)

// EncodeFITS streams the waveform to w as a FITS image, one row per channel,
// in physical units.  Acquisition settings travel in the header cards.
func (wav *Waveform) EncodeFITS(w io.Writer, metadata []fitsio.Card) error {
	fits, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	defer fits.Close()

	nchan := len(wav.Channels)
	if nchan == 0 {
		return fmt.Errorf("waveform: no channels to encode")
	}
	var phys [][]float64
	for i := 0; i < nchan; i++ {
		ch, ok := wav.Channels[channelName(i)]
		if !ok {
			return fmt.Errorf("waveform: channel %s missing from FITS encode", channelName(i))
		}
		phys = append(phys, ch.Physical())
	}
	dims := []int{len(phys[0])}
	if nchan > 1 {
		dims = append(dims, nchan)
	}
	im := fitsio.NewImage(-64, dims)
	defer im.Close()

	cards := append([]fitsio.Card{
		{Name: "DT", Value: wav.DT, Comment: "sample spacing [s]"},
		{Name: "NCHAN", Value: nchan, Comment: "channel count"},
	}, metadata...)
	if err := im.Header().Append(cards...); err != nil {
		return err
	}

	flat := make([]float64, 0, nchan*len(phys[0]))
	for _, p := range phys {
		flat = append(flat, p...)
	}
	if err := im.Write(flat); err != nil {
		return err
	}
	return fits.Write(im)
}
