package ats

import "fmt"

// BoardType identifies a digitizer model.
type BoardType uint32

// Board types from AlazarGetBoardKind
const (
	BoardNone BoardType = iota
	ATS850
	ATS310
	ATS330
	ATS855
	ATS315
	ATS335
	ATS460
	ATS860
	ATS660
	ATS665
	ATS9462
	ATS9434
	ATS9870
	ATS9350
	ATS9325
	ATS9440
	ATS9410
	ATS9351
	ATS9310
	ATS9461
	ATS9850
	ATS9625
	ATG6500
	ATS9626
	ATS9360
	AXI9870
	ATS9370
	ATU7825
	ATS9373
	ATS9416
	ATS9637
	ATS9120
	ATS9371
	ATS9130
	ATS9352
	ATS9453
	ATS9146
	ATS9000
	ATST371
	ATS9437
	ATS9618
	ATS9358
	_ // 43 is unassigned
	ATS9353
	ATS9872
	ATS9470
	ATS9628
	ATS9874
	ATS9473
	ATS9280
	ATS4001
	ATS9182
	ATS9364
	ATS9442
	ATS9376
	ATS9380
	ATS9428
)

var boardTypeNames = map[BoardType]string{
	BoardNone: "NONE",
	ATS850:    "ATS850",
	ATS310:    "ATS310",
	ATS330:    "ATS330",
	ATS855:    "ATS855",
	ATS315:    "ATS315",
	ATS335:    "ATS335",
	ATS460:    "ATS460",
	ATS860:    "ATS860",
	ATS660:    "ATS660",
	ATS665:    "ATS665",
	ATS9462:   "ATS9462",
	ATS9434:   "ATS9434",
	ATS9870:   "ATS9870",
	ATS9350:   "ATS9350",
	ATS9325:   "ATS9325",
	ATS9440:   "ATS9440",
	ATS9410:   "ATS9410",
	ATS9351:   "ATS9351",
	ATS9310:   "ATS9310",
	ATS9461:   "ATS9461",
	ATS9850:   "ATS9850",
	ATS9625:   "ATS9625",
	ATG6500:   "ATG6500",
	ATS9626:   "ATS9626",
	ATS9360:   "ATS9360",
	AXI9870:   "AXI9870",
	ATS9370:   "ATS9370",
	ATU7825:   "ATU7825",
	ATS9373:   "ATS9373",
	ATS9416:   "ATS9416",
	ATS9637:   "ATS9637",
	ATS9120:   "ATS9120",
	ATS9371:   "ATS9371",
	ATS9130:   "ATS9130",
	ATS9352:   "ATS9352",
	ATS9453:   "ATS9453",
	ATS9146:   "ATS9146",
	ATS9000:   "ATS9000",
	ATST371:   "ATST371",
	ATS9437:   "ATS9437",
	ATS9618:   "ATS9618",
	ATS9358:   "ATS9358",
	ATS9353:   "ATS9353",
	ATS9872:   "ATS9872",
	ATS9470:   "ATS9470",
	ATS9628:   "ATS9628",
	ATS9874:   "ATS9874",
	ATS9473:   "ATS9473",
	ATS9280:   "ATS9280",
	ATS4001:   "ATS4001",
	ATS9182:   "ATS9182",
	ATS9364:   "ATS9364",
	ATS9442:   "ATS9442",
	ATS9376:   "ATS9376",
	ATS9380:   "ATS9380",
	ATS9428:   "ATS9428",
}

func (b BoardType) String() string {
	if s, ok := boardTypeNames[b]; ok {
		return s
	}
	return fmt.Sprintf("BoardType(%d)", uint32(b))
}

// ParseBoardType converts a model name like "ATS9462" to its BoardType
func ParseBoardType(s string) (BoardType, error) {
	for k, v := range boardTypeNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q is not a known board type", s)
}

// BoardOptionLow is a bit in the low word of the board options.
type BoardOptionLow uint32

// Low board option bits from AlazarQueryCapability(GetBoardOptionsLow)
const (
	OptionStreamingDMA         BoardOptionLow = 1 << 0
	OptionExternalClock        BoardOptionLow = 1 << 1
	OptionDualPortMemory       BoardOptionLow = 1 << 2
	Option180MHzOscillator     BoardOptionLow = 1 << 3
	OptionLVTTLExtClock        BoardOptionLow = 1 << 4
	OptionSWSPI                BoardOptionLow = 1 << 5
	OptionAltInputRanges       BoardOptionLow = 1 << 6
	OptionVariableRate10MHzPLL BoardOptionLow = 1 << 7
	Option2GHzADC              BoardOptionLow = 1 << 8
	OptionDualEdgeSampling     BoardOptionLow = 1 << 9
	OptionDCLKPhase            BoardOptionLow = 1 << 10
	OptionWideband             BoardOptionLow = 1 << 11
)

// BoardOptionHigh is a bit in the high word of the board options.
type BoardOptionHigh uint32

// High board option bits from AlazarQueryCapability(GetBoardOptionsHigh)
const (
	OptionOEMFPGA BoardOptionHigh = 1 << 15
)

// Capability is a device attribute readable with QueryCapability.
type Capability uint32

// Capabilities from ALAZAR_CAPABILITIES
const (
	GetSerialNumber               Capability = 0x10000024
	GetFirstCalDate               Capability = 0x10000025
	GetLatestCalDate              Capability = 0x10000026
	GetLatestTestDate             Capability = 0x10000027
	GetLatestCalDateMonth         Capability = 0x1000002D
	GetLatestCalDateDay           Capability = 0x1000002E
	GetLatestCalDateYear          Capability = 0x1000002F
	GetBoardOptionsLow            Capability = 0x10000037
	GetBoardOptionsHigh           Capability = 0x10000038
	MemorySize                    Capability = 0x1000002A
	ASOPCType                     Capability = 0x1000002C
	BoardTypeCap                  Capability = 0x1000002B
	GetPCIeLinkSpeed              Capability = 0x10000030
	GetPCIeLinkWidth              Capability = 0x10000031
	GetMaxPretriggerSamples       Capability = 0x10000046
	GetCPFDevice                  Capability = 0x10000071
	HasRecordFootersSupport       Capability = 0x10000073
	CapSupportsTraditionalAutoDMA Capability = 0x10000074
	CapSupportsNPTAutoDMA         Capability = 0x10000075
	CapMaxNPTPretriggerSamples    Capability = 0x10000076
	CapIsVFIFOBoard               Capability = 0x10000077
	CapSupportsNativeSinglePort   Capability = 0x10000078
	CapSupport8BitPacking         Capability = 0x10000079
	CapSupport12BitPacking        Capability = 0x10000080
)
