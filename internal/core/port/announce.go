package port

// Announcer mirrors committed state changes to downstream consumers.
// Suppressed writes are never announced.
type Announcer interface {
	Announce(key string, value any) error
}
