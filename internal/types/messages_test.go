package types

import (
	"testing"
)

func TestDecodeQueueUpdate(t *testing.T) {
	raw := []byte(`{"type":"queue_update","queue":[{"Q_number":101,"FULLNAME_TH":"Somchai"},{"Q_number":102,"FULLNAME_TH":"Suda"}]}`)

	msg, err := DecodeMessage(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Kind != KindQueueUpdate {
		t.Fatalf("expected queue_update, got %s", msg.Kind)
	}
	if len(msg.Queue) != 2 {
		t.Fatalf("expected 2 items, got %d", len(msg.Queue))
	}
	if msg.Queue[0].QNumber != 101 || msg.Queue[0].Fullname != "Somchai" {
		t.Errorf("unexpected first item: %+v", msg.Queue[0])
	}
}

func TestDecodeQueueUpdateEmptyQueue(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"type":"queue_update","queue":[]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Queue == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(msg.Queue) != 0 {
		t.Errorf("expected 0 items, got %d", len(msg.Queue))
	}
}

func TestDecodeCurrent(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"type":"current","item":{"Q_number":101,"FULLNAME_TH":"Somchai"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Kind != KindCurrent {
		t.Fatalf("expected current, got %s", msg.Kind)
	}
	if msg.Item == nil || msg.Item.QNumber != 101 {
		t.Errorf("unexpected item: %+v", msg.Item)
	}
}

func TestDecodeCurrentNullClearsItem(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"type":"current","item":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Item != nil {
		t.Errorf("expected nil item, got %+v", msg.Item)
	}
}

func TestDecodeStatus(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"type":"status","online":3,"queue_length":7,"processed_count":12,"muted":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Kind != KindStatus {
		t.Fatalf("expected status, got %s", msg.Kind)
	}
	want := ServiceStatus{Online: 3, QueueLength: 7, ProcessedCount: 12, Muted: true}
	if msg.Status != want {
		t.Errorf("expected %+v, got %+v", want, msg.Status)
	}
}

func TestDecodeComplete(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"type":"complete","Q_number":42}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Kind != KindComplete {
		t.Fatalf("expected complete, got %s", msg.Kind)
	}
	if msg.QNumber != 42 {
		t.Errorf("expected Q_number 42, got %d", msg.QNumber)
	}
}

func TestDecodeHistory(t *testing.T) {
	raw := []byte(`{"type":"history","history":[{"Q_number":5,"FULLNAME_TH":"Wichai","completedBy":"op-1","transferred":true}]}`)

	msg, err := DecodeMessage(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Kind != KindHistory {
		t.Fatalf("expected history, got %s", msg.Kind)
	}
	if len(msg.History) != 1 {
		t.Fatalf("expected 1 record, got %d", len(msg.History))
	}
	h := msg.History[0]
	if h.QNumber != 5 || h.CompletedBy != "op-1" || !h.Transferred {
		t.Errorf("unexpected record: %+v", h)
	}
}

func TestDecodeAudio(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"type":"audio","data":"U29tZUF1ZGlv"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Kind != KindAudio {
		t.Fatalf("expected audio, got %s", msg.Kind)
	}
	if msg.AudioData != "U29tZUF1ZGlv" {
		t.Errorf("unexpected audio data: %s", msg.AudioData)
	}
}

func TestDecodeUnknownTypeIsNoOp(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"type":"heartbeat","seq":9}`))
	if err != nil {
		t.Fatalf("unknown type should not error: %v", err)
	}
	if msg.Kind != KindUnknown {
		t.Errorf("expected unknown kind, got %s", msg.Kind)
	}
}

func TestDecodeMissingTypeIsUnknown(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"queue":[]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Kind != KindUnknown {
		t.Errorf("expected unknown kind, got %s", msg.Kind)
	}
}

func TestDecodeMalformedFrame(t *testing.T) {
	if _, err := DecodeMessage([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed frame")
	}
}

func TestServiceStateNext(t *testing.T) {
	st := &ServiceState{}
	if st.Next() != nil {
		t.Error("expected nil next for empty queue")
	}

	st.Queue = []QueueItem{{QNumber: 7, Fullname: "Manee"}, {QNumber: 8}}
	next := st.Next()
	if next == nil || next.QNumber != 7 {
		t.Errorf("expected head of queue, got %+v", next)
	}
}
