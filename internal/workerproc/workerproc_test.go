package workerproc

import (
	"errors"
	"testing"
)

func TestParseMessageValid(t *testing.T) {
	body := `{"serviceRequestId":"req-1","requestId":"http-1","enqueuedAt":"2026-08-30T10:00:00Z","version":1}`

	msg, meta, err := ParseMessage(body)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.ServiceRequestID != "req-1" {
		t.Fatalf("unexpected id %q", msg.ServiceRequestID)
	}
	if meta.BodyLen != len(body) {
		t.Fatalf("expected body len %d, got %d", len(body), meta.BodyLen)
	}
	if meta.BodySHA == "" {
		t.Fatalf("expected body sha")
	}
}

func TestParseMessageEmpty(t *testing.T) {
	_, _, err := ParseMessage("   ")
	var emptyErr ErrEmptyBody
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestParseMessageBadJSON(t *testing.T) {
	_, _, err := ParseMessage("{nope")
	var decodeErr ErrDecode
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestParseMessageMissingID(t *testing.T) {
	_, _, err := ParseMessage(`{"requestId":"http-1"}`)
	var missingErr ErrMissingRequestID
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected ErrMissingRequestID, got %v", err)
	}
}
