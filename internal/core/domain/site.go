package domain

import "time"

// SiteContext identifies the monitored installation for one run.
// Built from config at invocation start, read-only afterwards.
type SiteContext struct {
	SiteID              string
	HasPowerFlowFeature bool
}

// InstanceMetadata is the small self-describing record this process keeps
// about itself in the store. The host scheduler reads Schedule; LastRun is
// for operators.
type InstanceMetadata struct {
	Schedule string    `json:"schedule"`
	LastRun  time.Time `json:"lastRun"`
}
