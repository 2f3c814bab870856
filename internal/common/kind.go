package common

import "errors"

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindConflict
	KindNotFound
	KindInvalidCredentials
	KindInvalidToken
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindConflict:           "conflict",
	KindNotFound:           "not_found",
	KindInvalidCredentials: "invalid_credentials",
	KindInvalidToken:       "invalid_token",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// kindTable is checked in order; the first matching sentinel wins.
var kindTable = []struct {
	target error
	kind   Kind
}{
	{ErrorAlreadyExists, KindConflict},
	{ErrorNotFound, KindNotFound},
	{ErrInvalidPassword, KindInvalidCredentials},
	{ErrInvalidToken, KindInvalidToken},
}

// KindOf returns the Kind of err. Errors that wrap none of the sentinels,
// including ErrTokenSigning, are KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, e := range kindTable {
		if errors.Is(err, e.target) {
			return e.kind
		}
	}
	return KindUnknown
}
