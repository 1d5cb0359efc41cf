// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// SessionLookup caps the time the access gate waits on the session provider.
const SessionLookup = 2 * time.Second

// StoreOpen caps the time spent pinging a freshly opened database.
const StoreOpen = 5 * time.Second
