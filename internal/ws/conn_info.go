package ws

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ConnInfo carries identity and correlation data captured at handshake time.
// It is attached to the subscription and echoed in lifecycle events.
type ConnInfo struct {
	ConnID      string
	UserID      int
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}

func newConnID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
