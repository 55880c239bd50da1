package offline

import (
	"errors"
	"fmt"
)

var (
	// ErrInstallFailed marks an install attempt that committed nothing.
	ErrInstallFailed = errors.New("offline: cache install failed")
	// ErrNetworkUnavailable means a resource was neither cached nor fetchable.
	ErrNetworkUnavailable = errors.New("offline: network unavailable")
	ErrInvalidCacheName   = errors.New("offline: invalid cache name")
)

// InstallError reports the resource that aborted an install.
type InstallError struct {
	Cache string
	Path  string
	Err   error
}

func (e *InstallError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", ErrInstallFailed, e.Cache, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s: %v", ErrInstallFailed, e.Cache, e.Path, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

func (e *InstallError) Is(target error) bool { return target == ErrInstallFailed }
