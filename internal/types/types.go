package types

import "time"

// QueueStatus is the lifecycle state of a single queue ticket.
type QueueStatus string

const (
	StatusWaiting   QueueStatus = "waiting"
	StatusCalling   QueueStatus = "calling"
	StatusCompleted QueueStatus = "completed"
)

// Role determines which frames a connection receives. Displays get audio,
// clients drive actions.
type Role string

const (
	RoleDisplay Role = "display"
	RoleClient  Role = "client"
)

// QueueItem is one numbered ticket as reported by the queue service.
// Identity is Q_number within a service; the client never re-orders items.
type QueueItem struct {
	QNumber  int         `json:"Q_number"`
	Fullname string      `json:"FULLNAME_TH"`
	Service  string      `json:"service,omitempty"`
	Counter  string      `json:"counter,omitempty"`
	Status   QueueStatus `json:"status,omitempty"`
}

// HistoryRecord is a completed ticket as reported in a history frame.
// The server owns this list; the client only reads and filters it.
type HistoryRecord struct {
	QNumber         int    `json:"Q_number"`
	Fullname        string `json:"FULLNAME_TH"`
	Service         string `json:"service,omitempty"`
	Counter         string `json:"counter,omitempty"`
	Transferred     bool   `json:"transferred,omitempty"`
	CompletedBy     string `json:"completedBy,omitempty"`
	CompletedByName string `json:"completedByName,omitempty"`
}

// ServiceStatus mirrors the server's status frame for one service.
type ServiceStatus struct {
	Online         int  `json:"online"`
	QueueLength    int  `json:"queue_length"`
	ProcessedCount int  `json:"processed_count"`
	Muted          bool `json:"muted"`
}

// ServiceState is the full reconciled state for one service. Each slot is
// owned exclusively by its service's reducer; the only cross-service reader
// is the display board aggregator.
type ServiceState struct {
	Name         string          `json:"name"`
	Label        string          `json:"label"`
	Queue        []QueueItem     `json:"queue"`
	Current      *QueueItem      `json:"current"`
	History      []HistoryRecord `json:"history"`
	Status       ServiceStatus   `json:"status"`
	IsCalling    bool            `json:"isCalling"`
	LastCalledAt time.Time       `json:"lastCalledAt"`
	Connected    bool            `json:"connected"`
}

// Next returns the head of the waiting queue as currently known, or nil.
// The client does not predict ordering beyond the server's snapshot.
func (s *ServiceState) Next() *QueueItem {
	if len(s.Queue) == 0 {
		return nil
	}
	return &s.Queue[0]
}

// Counter is a physical service point an operator selects before calling.
type Counter struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ServiceDefinition is read-only reference data fetched once per backend
// connection.
type ServiceDefinition struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Counters []Counter `json:"counters,omitempty"`
	Color    string    `json:"color,omitempty"`
}

// TransferCandidate is a completed ticket eligible for transfer into another
// service. Client-held only, reconciled against authoritative history frames.
type TransferCandidate struct {
	QNumber         int    `json:"Q_number"`
	Fullname        string `json:"FULLNAME_TH"`
	Service         string `json:"service"`
	CompletedBy     string `json:"completedBy"`
	CompletedByName string `json:"completedByName,omitempty"`
}
