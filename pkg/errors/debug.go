package errors

import stdErrors "errors"

// DumpInfo is the loggable breakdown of an error chain.
type DumpInfo struct {
	TopMessage string
	Code       string
	Chain      []string
}

// Dump walks the chain so the HTTP boundary can log every layer once.
func Dump(err error) DumpInfo {
	info := DumpInfo{}
	if err == nil {
		return info
	}

	info.TopMessage = err.Error()
	if typed := As(err); typed != nil {
		info.Code = string(typed.Code())
	}

	for current := err; current != nil; current = stdErrors.Unwrap(current) {
		info.Chain = append(info.Chain, current.Error())
	}
	return info
}
