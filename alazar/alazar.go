/*Package alazar provides an interface to AlazarTech ATS waveform digitizers

The package wraps the vendor's ATSApi shared library.  A Board owns the
driver handle for one digitizer in one system and exposes the configuration
and AutoDMA calls as methods.  Transfer memory is managed on the Go side by
the dma package; a buffer is posted to the board with PostAsyncBuffer and
handed back, filled, by WaitAsyncBufferComplete.

Basic usage for an NPT acquisition:

	board, err := alazar.Open(1, 1)
	if err != nil {
		log.Fatal(err)
	}
	board.SetCaptureClock(ats.InternalClock, ats.SampleRate100MSPS, ats.ClockEdgeRising, 0)
	board.InputControlEx(ats.ChannelA, ats.CouplingDC, ats.InputRangePM400mV, ats.Impedance50Ohm)
	board.SetTriggerOperation(ats.TriggerOpJ,
		ats.TriggerEngineJ, ats.TrigChanA, ats.TriggerSlopePositive, 150,
		ats.TriggerEngineK, ats.TrigDisable, ats.TriggerSlopePositive, 128)
	buf, _ := dma.NewBuffer(nbytes, format)
	board.BeforeAsyncRead(ats.ChannelA, 0, samples, records, records, ats.ADMANPT,
		ats.ADMAExternalStartCapture|ats.ADMAInterleaveSamples)
	board.PostAsyncBuffer(buf)
	board.StartCapture()
	err = board.WaitAsyncBufferComplete(buf, 5*time.Second)
	// decode buf, repost, and so on; AbortAsyncRead when done
*/
package alazar

/*
#cgo CFLAGS: -I/usr/local/AlazarTech/include
#cgo LDFLAGS: -L/usr/local/AlazarTech/lib -lATSApi
#include <stdlib.h>
#include "AlazarApi.h"
*/
import "C"
import (
	"fmt"
	"time"
	"unsafe"

	"github.com/tweber225/atsbindings/ats"
	"github.com/tweber225/atsbindings/dma"
)

// InfiniteRecords as records per acquisition makes BeforeAsyncRead stream
// until aborted.
const InfiniteRecords = 0x7FFFFFFF

// enrich returns a new error decorated with the procedure called.
// ApiSuccess yields nil.
func enrich(code C.RETURN_CODE, procedure string) error {
	err := ats.Error(uint32(code))
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s encountered at call to %s", err, procedure)
}

// Board is a handle to one digitizer.  The driver owns the underlying
// handle; there is no close call in the vendor API, the handle lives for
// the process.
type Board struct {
	handle C.HANDLE

	// SystemID and BoardID locate the board, both count from 1
	SystemID int
	BoardID  int
}

// Open gets the handle for a board by its system and board ID.  IDs count
// from 1; a single-board host is (1, 1).
func Open(systemID, boardID int) (*Board, error) {
	h := C.AlazarGetBoardBySystemID(C.U32(systemID), C.U32(boardID))
	if h == nil {
		return nil, fmt.Errorf("alazar: board %d.%d not found", systemID, boardID)
	}
	return &Board{handle: h, SystemID: systemID, BoardID: boardID}, nil
}

// BoardKind returns the model of the board.
func (b *Board) BoardKind() ats.BoardType {
	return ats.BoardType(C.AlazarGetBoardKind(b.handle))
}

// BoardRevision returns the PCB hardware revision.
func (b *Board) BoardRevision() (major, minor uint8, err error) {
	var maj, min C.U8
	err = enrich(C.AlazarGetBoardRevision(b.handle, &maj, &min), "AlazarGetBoardRevision")
	return uint8(maj), uint8(min), err
}

// CPLDVersion returns the version of the board's CPLD.
func (b *Board) CPLDVersion() (major, minor uint8, err error) {
	var maj, min C.U8
	err = enrich(C.AlazarGetCPLDVersion(b.handle, &maj, &min), "AlazarGetCPLDVersion")
	return uint8(maj), uint8(min), err
}

// FPGAVersion returns the version of the board's FPGA image.
func (b *Board) FPGAVersion() (major, minor uint8, err error) {
	var maj, min C.U8
	err = enrich(C.AlazarGetFPGAVersion(b.handle, &maj, &min), "AlazarGetFPGAVersion")
	return uint8(maj), uint8(min), err
}

// ChannelInfo returns the on-board memory size in samples per channel and
// the ADC resolution in bits.
func (b *Board) ChannelInfo() (memorySamples uint32, bitsPerSample uint8, err error) {
	var mem C.U32
	var bits C.U8
	err = enrich(C.AlazarGetChannelInfo(b.handle, &mem, &bits), "AlazarGetChannelInfo")
	return uint32(mem), uint8(bits), err
}

// QueryCapability reads a device attribute.
func (b *Board) QueryCapability(cap ats.Capability) (uint32, error) {
	var v C.U32
	err := enrich(C.AlazarQueryCapability(b.handle, C.U32(cap), 0, &v), "AlazarQueryCapability")
	return uint32(v), err
}

// SerialNumber reads the board serial number.
func (b *Board) SerialNumber() (uint32, error) {
	return b.QueryCapability(ats.GetSerialNumber)
}

// SetCaptureClock configures the sample clock.  decimation is ignored for
// most clock sources, see the board documentation.
func (b *Board) SetCaptureClock(source ats.ClockSource, rate ats.SampleRate, edge ats.ClockEdge, decimation int) error {
	return enrich(C.AlazarSetCaptureClock(b.handle,
		C.U32(source), C.U32(rate), C.U32(edge), C.U32(decimation)),
		"AlazarSetCaptureClock")
}

// SetExternalClockLevel sets the external clock comparator level as a
// percentage of the input range.
func (b *Board) SetExternalClockLevel(levelPercent float64) error {
	return enrich(C.AlazarSetExternalClockLevel(b.handle, C.float(levelPercent)),
		"AlazarSetExternalClockLevel")
}

// InputControlEx configures the coupling, range and impedance of one input
// channel.
func (b *Board) InputControlEx(channel ats.Channel, coupling ats.Coupling, rng ats.InputRange, impedance ats.Impedance) error {
	return enrich(C.AlazarInputControlEx(b.handle,
		C.U32(channel), C.U32(coupling), C.U32(rng), C.U32(impedance)),
		"AlazarInputControlEx")
}

// SetExternalTrigger configures the external trigger input.
func (b *Board) SetExternalTrigger(coupling ats.Coupling, rng ats.ExternalTriggerRange) error {
	return enrich(C.AlazarSetExternalTrigger(b.handle, C.U32(coupling), C.U32(rng)),
		"AlazarSetExternalTrigger")
}

// SetTriggerOperation configures both trigger engines and how their outputs
// combine.  Levels are 8-bit codes, 128 is zero volts.
func (b *Board) SetTriggerOperation(op ats.TriggerOperation,
	engine1 ats.TriggerEngine, source1 ats.TriggerSource, slope1 ats.TriggerSlope, level1 int,
	engine2 ats.TriggerEngine, source2 ats.TriggerSource, slope2 ats.TriggerSlope, level2 int) error {
	return enrich(C.AlazarSetTriggerOperation(b.handle, C.U32(op),
		C.U32(engine1), C.U32(source1), C.U32(slope1), C.U32(level1),
		C.U32(engine2), C.U32(source2), C.U32(slope2), C.U32(level2)),
		"AlazarSetTriggerOperation")
}

// triggerTimeoutTick is the resolution of the trigger timeout clock.
const triggerTimeoutTick = 10 * time.Microsecond

// SetTriggerTimeout makes the board trigger itself if no trigger event
// arrives within d.  Zero waits forever.
func (b *Board) SetTriggerTimeout(d time.Duration) error {
	ticks := d / triggerTimeoutTick
	return enrich(C.AlazarSetTriggerTimeOut(b.handle, C.U32(ticks)),
		"AlazarSetTriggerTimeOut")
}

// SetTriggerDelay delays acquisition by a number of samples after the
// trigger event.
func (b *Board) SetTriggerDelay(samples int) error {
	return enrich(C.AlazarSetTriggerDelay(b.handle, C.U32(samples)),
		"AlazarSetTriggerDelay")
}

// SetRecordSize sets the number of pre and post trigger samples per record.
func (b *Board) SetRecordSize(preTriggerSamples, postTriggerSamples int) error {
	return enrich(C.AlazarSetRecordSize(b.handle,
		C.U32(preTriggerSamples), C.U32(postTriggerSamples)),
		"AlazarSetRecordSize")
}

// ConfigureAuxIO sets the function of the AUX I/O connector.
func (b *Board) ConfigureAuxIO(mode ats.AuxIOMode, parameter uint32) error {
	return enrich(C.AlazarConfigureAuxIO(b.handle, C.U32(mode), C.U32(parameter)),
		"AlazarConfigureAuxIO")
}

// SetLED turns the mounting bracket LED on or off.
func (b *Board) SetLED(state ats.LEDState) error {
	return enrich(C.AlazarSetLED(b.handle, C.U32(state)), "AlazarSetLED")
}

// SetParameter writes a device parameter.  channel 0 addresses the board
// rather than an input.
func (b *Board) SetParameter(channel uint8, p ats.Parameter, value int) error {
	return enrich(C.AlazarSetParameter(b.handle, C.U8(channel), C.U32(p), C.long(value)),
		"AlazarSetParameter")
}

// GetParameter reads a device parameter.
func (b *Board) GetParameter(channel uint8, p ats.Parameter) (int, error) {
	var v C.long
	err := enrich(C.AlazarGetParameter(b.handle, C.U8(channel), C.U32(p), &v),
		"AlazarGetParameter")
	return int(v), err
}

// SetPackMode selects on-board sample packing for subsequent acquisitions.
func (b *Board) SetPackMode(mode ats.PackMode) error {
	return b.SetParameter(0, ats.PackModeParam, int(mode))
}

// PackMode reads the active sample packing mode.
func (b *Board) PackMode() (ats.PackMode, error) {
	v, err := b.GetParameter(0, ats.PackModeParam)
	return ats.PackMode(v), err
}

// BeforeAsyncRead configures an AutoDMA acquisition.  recordsPerAcquisition
// may be InfiniteRecords to stream until AbortAsyncRead.
func (b *Board) BeforeAsyncRead(channels ats.Channel, transferOffset int,
	samplesPerRecord, recordsPerBuffer, recordsPerAcquisition int,
	mode ats.ADMAMode, flags ats.ADMAFlag) error {
	return enrich(C.AlazarBeforeAsyncRead(b.handle, C.U32(channels),
		C.long(transferOffset), C.U32(samplesPerRecord), C.U32(recordsPerBuffer),
		C.U32(recordsPerAcquisition), C.U32(uint32(mode)|uint32(flags))),
		"AlazarBeforeAsyncRead")
}

// PostAsyncBuffer hands a buffer to the board to be filled.  The buffer must
// not be decoded, reset or garbage collected before WaitAsyncBufferComplete
// returns it.
func (b *Board) PostAsyncBuffer(buf *dma.Buffer) error {
	raw := buf.Bytes()
	return enrich(C.AlazarPostAsyncBuffer(b.handle,
		unsafe.Pointer(&raw[0]), C.U32(len(raw))),
		"AlazarPostAsyncBuffer")
}

// WaitAsyncBufferComplete blocks until the board has filled buf or the
// timeout elapses.  Buffers complete in the order they were posted.
func (b *Board) WaitAsyncBufferComplete(buf *dma.Buffer, timeout time.Duration) error {
	raw := buf.Bytes()
	return enrich(C.AlazarWaitAsyncBufferComplete(b.handle,
		unsafe.Pointer(&raw[0]), C.U32(timeout.Milliseconds())),
		"AlazarWaitAsyncBufferComplete")
}

// StartCapture arms the board.
func (b *Board) StartCapture() error {
	return enrich(C.AlazarStartCapture(b.handle), "AlazarStartCapture")
}

// AbortAsyncRead aborts a pending AutoDMA acquisition and releases any
// posted buffers.  Call it before the buffers go out of scope.
func (b *Board) AbortAsyncRead() error {
	return enrich(C.AlazarAbortAsyncRead(b.handle), "AlazarAbortAsyncRead")
}

// Busy indicates an acquisition is in progress.
func (b *Board) Busy() bool {
	return C.AlazarBusy(b.handle) > 0
}
