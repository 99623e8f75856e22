package savedata

import "fmt"

// VersionError reports a file of a known kind written by a game version
// this package does not describe.
type VersionError struct {
	Kind string
	Want uint32
	Got  uint32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported %s version %#x (expected %#x)", e.Kind, e.Got, e.Want)
}

func versionCheck(kind string, want uint32) func(uint64) error {
	return func(actual uint64) error {
		return &VersionError{Kind: kind, Want: want, Got: uint32(actual)}
	}
}
