package types

import "encoding/json"

// MessageKind discriminates inbound socket frames.
type MessageKind string

const (
	KindQueueUpdate MessageKind = "queue_update"
	KindCurrent     MessageKind = "current"
	KindStatus      MessageKind = "status"
	KindComplete    MessageKind = "complete"
	KindHistory     MessageKind = "history"
	KindAudio       MessageKind = "audio"

	// KindUnknown covers any frame with an unrecognized type discriminator.
	// Unknown frames are a forward-compatible no-op, never an error.
	KindUnknown MessageKind = "unknown"
)

// Message is one decoded inbound frame. Exactly the payload field matching
// Kind is populated; everything else is zero.
type Message struct {
	Kind MessageKind

	// queue_update: wholesale replacement of the waiting list.
	Queue []QueueItem

	// current: nil clears the singleton current slot.
	Item *QueueItem

	// status
	Status ServiceStatus

	// complete
	QNumber int

	// history: wholesale replacement, most-recent-first.
	History []HistoryRecord

	// audio: base64-encoded clip.
	AudioData string
}

// wireFrame covers every field any known frame type carries. Decoded once at
// the socket boundary so the rest of the engine never sees raw JSON.
type wireFrame struct {
	Type           string          `json:"type"`
	Queue          []QueueItem     `json:"queue"`
	Item           *QueueItem      `json:"item"`
	Online         int             `json:"online"`
	QueueLength    int             `json:"queue_length"`
	ProcessedCount int             `json:"processed_count"`
	Muted          bool            `json:"muted"`
	QNumber        json.RawMessage `json:"Q_number"`
	History        []HistoryRecord `json:"history"`
	Data           string          `json:"data"`
}

// DecodeMessage parses one raw socket frame into the closed message union.
// A missing or unrecognized type discriminator yields KindUnknown; a frame
// that fails to parse at all returns the error.
func DecodeMessage(raw []byte) (Message, error) {
	var frame wireFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return Message{}, err
	}

	switch MessageKind(frame.Type) {
	case KindQueueUpdate:
		queue := frame.Queue
		if queue == nil {
			queue = []QueueItem{}
		}
		return Message{Kind: KindQueueUpdate, Queue: queue}, nil

	case KindCurrent:
		return Message{Kind: KindCurrent, Item: frame.Item}, nil

	case KindStatus:
		return Message{Kind: KindStatus, Status: ServiceStatus{
			Online:         frame.Online,
			QueueLength:    frame.QueueLength,
			ProcessedCount: frame.ProcessedCount,
			Muted:          frame.Muted,
		}}, nil

	case KindComplete:
		var qnum int
		if len(frame.QNumber) > 0 {
			if err := json.Unmarshal(frame.QNumber, &qnum); err != nil {
				return Message{}, err
			}
		}
		return Message{Kind: KindComplete, QNumber: qnum}, nil

	case KindHistory:
		history := frame.History
		if history == nil {
			history = []HistoryRecord{}
		}
		return Message{Kind: KindHistory, History: history}, nil

	case KindAudio:
		return Message{Kind: KindAudio, AudioData: frame.Data}, nil

	default:
		return Message{Kind: KindUnknown}, nil
	}
}
