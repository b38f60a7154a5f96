package wsclient

import (
	"fmt"
	"strings"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
)

// SocketURL translates a backend base address into the websocket endpoint
// for one service and role. http becomes ws, https becomes wss, a bare host
// is assumed plain ws, and a trailing slash is stripped before the path is
// composed.
func SocketURL(base, service string, role types.Role) string {
	u := strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "ws://"), strings.HasPrefix(u, "wss://"):
		// already a websocket address
	default:
		u = "ws://" + u
	}
	return fmt.Sprintf("%s/api/queue/ws/%s?role=%s", u, service, role)
}
