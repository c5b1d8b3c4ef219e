package assets

import (
	"fmt"

	"github.com/pkg/errors"
)

// ReloadFailedError is returned when a reload could not produce a new resource set.
// The previous set stays active.
type ReloadFailedError struct {
	KeptVersion uint64
	Err         error
}

func (e *ReloadFailedError) Error() string {
	return fmt.Sprintf("asset reload failed, keeping resource set v%d: %v", e.KeptVersion, e.Err)
}

// Cause returns the load error
func (e *ReloadFailedError) Cause() error {
	return e.Err
}

// IsReloadFailed reports whether err is or wraps a ReloadFailedError
func IsReloadFailed(err error) bool {
	for err != nil {
		if _, ok := err.(*ReloadFailedError); ok {
			return true
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = cause.Cause()
	}
	return false
}

// errCorruptAsset is the cause of load errors for undecodable files
var errCorruptAsset = errors.New("corrupt asset")
