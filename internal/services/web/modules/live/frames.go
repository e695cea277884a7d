package live

import "github.com/louisbranch/royal.studio/internal/showcase/session"

// Frame types on the wire.
const (
	FrameSession  = "session"
	FrameSnapshot = "snapshot"
	FrameError    = "error"
	FrameRatio    = "ratio"
)

// Error keys carried by error frames and pre-upgrade JSON errors.
const (
	keyUnavailable      = "live.unavailable"
	keyUnknownVariant   = "live.unknown_variant"
	keyRateLimited      = "live.rate_limited"
	keyMalformedFrame   = "live.malformed_frame"
	keyUnsupportedFrame = "live.unsupported_frame"
	keyMissingRatio     = "live.missing_ratio"
	keyUnknownRegion    = "live.unknown_region"
	keyInvalidRatio     = "live.invalid_ratio"
)

// Outbound is a server to client frame.
type Outbound struct {
	Type      string            `json:"type"`
	SessionID string            `json:"session_id,omitempty"`
	Variant   string            `json:"variant,omitempty"`
	Snapshot  *session.Snapshot `json:"snapshot,omitempty"`
	Error     string            `json:"error,omitempty"`
	Key       string            `json:"key,omitempty"`
}

// Inbound is a client to server frame.
type Inbound struct {
	Type   string   `json:"type"`
	Region string   `json:"region"`
	Ratio  *float64 `json:"ratio"`
}
