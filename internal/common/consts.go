package common

const (
	UnknownStr       = "unknown"
	InterfaceTypeStr = "any"
)
