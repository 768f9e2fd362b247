/*Package ats defines the enumerations and return codes of the AlazarTech
ATSApi, with conversions between raw API values, physical quantities, and
human-readable strings.

Every type here is a closed set backed by an explicit conversion table; there
is no reflection and no state.  The cgo layer (package alazar) passes these
values through to the driver unchanged.
*/
package ats

import "fmt"

// ApiSuccess is the return code the ATSApi uses for a successful call.
const ApiSuccess ReturnCode = 512

// ReturnCode is a status code returned by every ATSApi entry point.
type ReturnCode uint32

// returnCodeNames maps API return codes to their names.  The table is copied
// from AlazarError.h so that codes can be rendered without a driver call.
var returnCodeNames = map[ReturnCode]string{
	512: "ApiSuccess",
	513: "ApiFailed",
	514: "ApiAccessDenied",
	515: "ApiDmaChannelUnavailable",
	516: "ApiDmaChannelInvalid",
	517: "ApiDmaChannelTypeError",
	518: "ApiDmaInProgress",
	519: "ApiDmaDone",
	520: "ApiDmaPaused",
	521: "ApiDmaNotPaused",
	522: "ApiDmaCommandInvalid",
	532: "ApiNullParam",
	533: "ApiInvalidDeviceInfo",
	536: "ApiUnsupportedFunction",
	537: "ApiInvalidPciSpace",
	538: "ApiInvalidIopSpace",
	539: "ApiInvalidSize",
	540: "ApiInvalidAddress",
	541: "ApiInvalidAccessType",
	542: "ApiInvalidIndex",
	544: "ApiInvalidRegister",
	549: "ApiInvalidBusIndex",
	550: "ApiStructSizeMismatch",
	551: "ApiInvalidHandle",
	556: "ApiInvalidPowerState",
	558: "ApiNotInitialized",
	561: "ApiInvalidData",
	562: "ApiInvalidData2",
	563: "ApiInvalidData3",
	564: "ApiInvalidData4",
	565: "ApiPowerDown",
	567: "ApiNotSupportThisChannel",
	568: "ApiNoAction",
	569: "ApiHSNotSupported",
	570: "ApiVpdNotEnabled",
	573: "ApiInvalidOffset",
	576: "ApiPciTimeout",
	578: "ApiInvalidBuffer",
	582: "ApiBufferNotReady",
	583: "ApiInvalidIndexEntry",
	586: "ApiDmaSglBuildFailed",
	587: "ApiPMNotSupported",
	589: "ApiMuNotInitialized",
	590: "ApiMuFifoEmpty",
	591: "ApiMuFifoFull",
	595: "ApiDeviceNotFound",
	596: "ApiWaitTimeout",
	597: "ApiWaitCanceled",
	598: "ApiBufferTooSmall",
	599: "ApiBufferOverflow",
	600: "ApiInvalidBufferSize",
	601: "ApiDmaStatusError",
	602: "ApiInvalidAddressRange",
	604: "ApiNotEnoughNptFooters",
	605: "ApiOCModuleNotDetected",
	606: "ApiNetworkError",
	607: "ApiFftSizeTooLarge",
}

// Error satisfies the error interface
func (r ReturnCode) Error() string {
	if s, ok := returnCodeNames[r]; ok {
		return fmt.Sprintf("%d - %s", uint32(r), s)
	}
	return fmt.Sprintf("%d - UNKNOWN_RETURN_CODE", uint32(r))
}

// Error returns nil for ApiSuccess or a ReturnCode error otherwise
func Error(code uint32) error {
	if ReturnCode(code) == ApiSuccess {
		return nil
	}
	return ReturnCode(code)
}
