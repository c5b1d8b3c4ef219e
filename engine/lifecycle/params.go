package lifecycle

import (
	"github.com/pkg/errors"
)

// ErrInvalidParams is the cause of errors returned for malformed InitParams
var ErrInvalidParams = errors.New("invalid init params")

// InitParams is what the host passes to Initialize. The paths are opaque to the bridge
// and are handed through to the asset and resource subsystems.
type InitParams struct {
	ScreenWidth   int
	ScreenHeight  int
	AppName       string
	ApkPath       string
	AppFolderPath string
	CachePath     string
}

// Validate checks the screen size and app name
func (p InitParams) Validate() error {
	if p.ScreenWidth <= 0 || p.ScreenHeight <= 0 {
		return errors.Wrapf(ErrInvalidParams, "screen size %dx%d", p.ScreenWidth, p.ScreenHeight)
	}
	if p.AppName == "" {
		return errors.Wrap(ErrInvalidParams, "empty app name")
	}
	return nil
}
