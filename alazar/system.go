package alazar

/*
#include "AlazarApi.h"
*/
import "C"
import "fmt"

// Version is a semantic-ish version triple reported by the driver or SDK.
type Version struct {
	Major, Minor, Revision int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

// NumOfSystems counts the board systems in the host.  Process-wide query, no
// cached state.
func NumOfSystems() int {
	return int(C.AlazarNumOfSystems())
}

// BoardsInSystem counts the boards in one system.  System IDs count from 1.
func BoardsInSystem(systemID int) int {
	return int(C.AlazarBoardsInSystemBySystemID(C.U32(systemID)))
}

// SDKVersion reports the version of the ATSApi library.
func SDKVersion() (Version, error) {
	var maj, min, rev C.U8
	err := enrich(C.AlazarGetSDKVersion(&maj, &min, &rev), "AlazarGetSDKVersion")
	return Version{int(maj), int(min), int(rev)}, err
}

// DriverVersion reports the version of the loaded kernel driver.
func DriverVersion() (Version, error) {
	var maj, min, rev C.U8
	err := enrich(C.AlazarGetDriverVersion(&maj, &min, &rev), "AlazarGetDriverVersion")
	return Version{int(maj), int(min), int(rev)}, err
}
