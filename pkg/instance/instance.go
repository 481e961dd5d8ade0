package instance

import "os"

// GetID identifies the running process in logs. OWNSHOP_INSTANCE_ID wins,
// then the platform's dyno name, then the hostname.
func GetID() string {
	if id := os.Getenv("OWNSHOP_INSTANCE_ID"); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
