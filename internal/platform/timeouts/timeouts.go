// Package timeouts defines the durations shared by the HTTP server and the
// live view-session channel.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// LiveWrite caps a single websocket frame write.
const LiveWrite = 5 * time.Second

// LivePong is how long a live connection may stay silent before it is
// considered gone. Pings go out at nine tenths of this interval.
const LivePong = 60 * time.Second

// LivePing is the interval between server pings on a live connection.
const LivePing = LivePong * 9 / 10
