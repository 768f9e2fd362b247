package ats

import "fmt"

// ADMAMode selects the AutoDMA transfer mode for BeforeAsyncRead.
type ADMAMode uint32

// AutoDMA modes
const (
	ADMATraditional        ADMAMode = 0x000
	ADMAContinuous         ADMAMode = 0x100
	ADMANPT                ADMAMode = 0x200
	ADMATriggeredStreaming ADMAMode = 0x400
)

var admaModeNames = map[ADMAMode]string{
	ADMATraditional:        "Traditional",
	ADMAContinuous:         "Continuous",
	ADMANPT:                "NPT",
	ADMATriggeredStreaming: "Triggered streaming",
}

func (m ADMAMode) String() string {
	if s, ok := admaModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("ADMAMode(0x%X)", uint32(m))
}

// ParseADMAMode converts a mode name to its ADMAMode
func ParseADMAMode(s string) (ADMAMode, error) {
	for k, v := range admaModeNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q is not a known AutoDMA mode", s)
}

// ADMAFlag is an option bit ORed into the BeforeAsyncRead flags word.
type ADMAFlag uint32

// AutoDMA flags
const (
	ADMAExternalStartCapture ADMAFlag = 0x1
	ADMAEnableRecordHeaders  ADMAFlag = 0x8
	ADMAAllocBuffers         ADMAFlag = 0x20
	ADMAFifoOnlyStreaming    ADMAFlag = 0x800
	ADMAInterleaveSamples    ADMAFlag = 0x1000
	ADMAGetProcessedData     ADMAFlag = 0x2000
	ADMADSP                  ADMAFlag = 0x4000
	ADMAEnableRecordFooters  ADMAFlag = 0x10000
	ADMAParallelDMA          ADMAFlag = 0x20000
)

// PackMode selects on-board sample packing, set through Parameter PackModeParam.
type PackMode uint32

// Pack modes
const (
	PackDefault         PackMode = 0
	Pack8BitsPerSample  PackMode = 1
	Pack12BitsPerSample PackMode = 2
)

var packModeNames = map[PackMode]string{
	PackDefault:         "None",
	Pack8BitsPerSample:  "8-bit",
	Pack12BitsPerSample: "12-bit",
}

func (p PackMode) String() string {
	if s, ok := packModeNames[p]; ok {
		return s
	}
	return fmt.Sprintf("PackMode(%d)", uint32(p))
}

// ParsePackMode converts a pack mode name ("None", "8-bit", "12-bit")
// to its PackMode.
func ParsePackMode(s string) (PackMode, error) {
	for k, v := range packModeNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q is not a known pack mode", s)
}

// Parameter is a device parameter usable with SetParameter and GetParameter.
type Parameter uint32

// Parameters
const (
	DataWidth                   Parameter = 0x10000009
	SetGetAsyncBuffSizeBytes    Parameter = 0x10000039
	SetGetAsyncBuffCount        Parameter = 0x10000040
	SetDataFormat               Parameter = 0x10000041
	GetDataFormat               Parameter = 0x10000042
	SetSingleChannelMode        Parameter = 0x10000043
	GetSamplesPerTimestampClock Parameter = 0x10000044
	GetRecordsCaptured          Parameter = 0x10000045
	GetAsyncBuffersPending      Parameter = 0x10000050
	GetAsyncBuffersPendingFull  Parameter = 0x10000051
	GetAsyncBuffersPendingEmpty Parameter = 0x10000052
	ECCModeParam                Parameter = 0x10000048
	GetAuxInputLevelParam       Parameter = 0x10000049
	GetChannelsPerBoard         Parameter = 0x10000070
	PackModeParam               Parameter = 0x10000072
	GetFPGATemperature          Parameter = 0x10000080
	APIFlags                    Parameter = 0x10000090
	SetBuffersPerTriggerEnable  Parameter = 0x10000097
	SetADCMode                  Parameter = 0x10000100
	GetOnboardMemoryUsed        Parameter = 0x10000105
)

// Data format values for SetDataFormat and GetDataFormat
const (
	DataFormatUnsigned = 0
	DataFormatSigned   = 1
)

// ECCMode enables or disables on-board memory error correction.
type ECCMode uint32

// ECC modes
const (
	ECCDisable ECCMode = 0
	ECCEnable  ECCMode = 1
)

// AuxIOMode configures the function of the AUX I/O connector.
type AuxIOMode uint32

// AUX I/O modes
const (
	AuxOutTrigger      AuxIOMode = 0
	AuxInTriggerEnable AuxIOMode = 1
	AuxOutPacer        AuxIOMode = 2
	AuxInAuxiliary     AuxIOMode = 13
	AuxOutSerialData   AuxIOMode = 14
)

var auxIOModeNames = map[AuxIOMode]string{
	AuxOutTrigger:      "Trigger output",
	AuxInTriggerEnable: "Trigger enable input",
	AuxOutPacer:        "Pacer output",
	AuxInAuxiliary:     "Auxiliary input",
	AuxOutSerialData:   "Serial data output",
}

func (m AuxIOMode) String() string {
	if s, ok := auxIOModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("AuxIOMode(%d)", uint32(m))
}

// AuxInputLevel is the logic level read from the AUX connector.
type AuxInputLevel uint32

// AUX input levels
const (
	AuxInputLow  AuxInputLevel = 0
	AuxInputHigh AuxInputLevel = 1
)

// LEDState drives the board's mounting-bracket LED.
type LEDState uint32

// LED states
const (
	LEDOff LEDState = 0
	LEDOn  LEDState = 1
)

// APITraceState controls driver API call tracing.
type APITraceState uint32

// API trace states
const (
	APIDisableTrace APITraceState = 0
	APIEnableTrace  APITraceState = 1
	APIFlushTrace   APITraceState = 2
)
