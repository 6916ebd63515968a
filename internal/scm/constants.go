package scm

import "strings"

// Access rights for the service control manager.
const (
	ManagerConnect       uint32 = 0x0001
	ManagerCreateService uint32 = 0x0002
	ManagerAllAccess     uint32 = 0xF003F
)

// Access rights for an individual service.
const (
	ServiceChangeConfig uint32 = 0x0002
	ServiceDelete       uint32 = 0x10000
	ServiceAllAccess    uint32 = 0xF01FF
)

// ServiceWin32OwnProcess marks a service that runs in its own process.
const ServiceWin32OwnProcess uint32 = 0x00000010

// Start types accepted by CreateServiceEntry.
const (
	StartAuto     uint32 = 2
	StartDemand   uint32 = 3
	StartDisabled uint32 = 4
)

// ErrorControlNormal logs start failures and continues booting.
const ErrorControlNormal uint32 = 1

// ConfigDescription is the info level of a SERVICE_DESCRIPTION record.
const ConfigDescription uint32 = 1

// LocalSystem is the built-in account services run as by default.
const LocalSystem = "LocalSystem"

// ParseStartType maps a start type name to its numeric code.
// Matching ignores case and surrounding space; unknown names map to StartAuto.
func ParseStartType(s string) uint32 {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "demand":
		return StartDemand
	case "disabled":
		return StartDisabled
	default:
		return StartAuto
	}
}

// StartTypeName is the inverse of ParseStartType for the three known codes.
func StartTypeName(code uint32) string {
	switch code {
	case StartAuto:
		return "auto"
	case StartDemand:
		return "demand"
	case StartDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}
