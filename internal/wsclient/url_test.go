package wsclient

import (
	"testing"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
)

func TestSocketURL(t *testing.T) {
	cases := []struct {
		base    string
		service string
		role    types.Role
		want    string
	}{
		{"http://localhost:8000", "general", types.RoleDisplay, "ws://localhost:8000/api/queue/ws/general?role=display"},
		{"https://queue.example.com", "general", types.RoleClient, "wss://queue.example.com/api/queue/ws/general?role=client"},
		{"http://localhost:8000/", "general", types.RoleDisplay, "ws://localhost:8000/api/queue/ws/general?role=display"},
		{"ws://localhost:8000", "emergency", types.RoleDisplay, "ws://localhost:8000/api/queue/ws/emergency?role=display"},
		{"wss://queue.example.com", "general", types.RoleClient, "wss://queue.example.com/api/queue/ws/general?role=client"},
		{"localhost:8000", "general", types.RoleDisplay, "ws://localhost:8000/api/queue/ws/general?role=display"},
	}

	for _, tc := range cases {
		if got := SocketURL(tc.base, tc.service, tc.role); got != tc.want {
			t.Errorf("SocketURL(%q, %q, %q) = %q, want %q", tc.base, tc.service, tc.role, got, tc.want)
		}
	}
}
