// Package capability detects, once at startup, which host features this service can use.
package capability

import (
	"os"
	"time"
)

// Set is the immutable capability set shared by every component after startup.
type Set struct {
	Notifications     bool `json:"notifications"`
	Push              bool `json:"push"`
	PeriodicSync      bool `json:"periodicSync"`
	DelayedScheduling bool `json:"delayedScheduling"`
}

// HostFeatures are the raw host facts the prober inspects.
type HostFeatures struct {
	FirebaseCredentialsFile  string
	FCMTopic                 string
	LiveRegistryAvailable    bool
	PeriodicSyncEnabled      bool
	PeriodicSyncInterval     time.Duration
	DelayedSchedulingEnabled bool
	QueueAvailable           bool
	DurableScheduling        bool

	// Stat defaults to os.Stat.
	Stat func(name string) (os.FileInfo, error)
}

// Probe maps host features to a capability set. An absent or unreadable feature is false, never an error.
func Probe(h HostFeatures) (set Set) {
	defer func() {
		if recover() != nil {
			set = Set{}
		}
	}()

	stat := h.Stat
	if stat == nil {
		stat = os.Stat
	}

	push := false
	if h.FirebaseCredentialsFile != "" && h.FCMTopic != "" {
		if info, err := stat(h.FirebaseCredentialsFile); err == nil && !info.IsDir() {
			push = true
		}
	}

	delayed := h.DelayedSchedulingEnabled
	if h.DurableScheduling && !h.QueueAvailable {
		delayed = false
	}

	return Set{
		Notifications:     push || h.LiveRegistryAvailable,
		Push:              push,
		PeriodicSync:      h.PeriodicSyncEnabled && h.PeriodicSyncInterval > 0,
		DelayedScheduling: delayed,
	}
}
