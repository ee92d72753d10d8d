package datasync

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

type EventType string

const (
	CHANGED_EVENT EventType = "changed"
	DELETED_EVENT EventType = "deleted"
)

type Codec int

const (
	JSON_CODEC Codec = iota
	MSGPACK_CODEC
)

func (c Codec) String() string {
	if c == MSGPACK_CODEC {
		return "msgpack"
	}
	return "json"
}

// DataEvent is one item of a data-changed batch. Payload is still encoded
// with Codec so that a bad payload only fails its own event.
type DataEvent struct {
	Type    EventType
	Path    string
	Payload []byte
	Codec   Codec
}

type jsonEnvelope struct {
	Type EventType       `json:"type"`
	Path string          `json:"path"`
	Data json.RawMessage `json:"data,omitempty"`
}

type msgpackEnvelope struct {
	Type EventType          `msgpack:"type"`
	Path string             `msgpack:"path"`
	Data msgpack.RawMessage `msgpack:"data,omitempty"`
}

// ParseJSONFrame reads a single envelope or an array of envelopes.
func ParseJSONFrame(frame []byte) ([]DataEvent, error) {
	trimmed := bytes.TrimSpace(frame)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty frame")
	}

	var envelopes []jsonEnvelope
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &envelopes); err != nil {
			return nil, fmt.Errorf("invalid json batch: %w", err)
		}
	} else {
		var envelope jsonEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("invalid json envelope: %w", err)
		}
		envelopes = append(envelopes, envelope)
	}

	events := make([]DataEvent, 0, len(envelopes))
	for _, envelope := range envelopes {
		events = append(events, DataEvent{
			Type:    envelope.Type,
			Path:    envelope.Path,
			Payload: envelope.Data,
			Codec:   JSON_CODEC,
		})
	}
	return events, nil
}

// ParseMsgpackFrame is the binary counterpart of ParseJSONFrame.
func ParseMsgpackFrame(frame []byte) ([]DataEvent, error) {
	var envelopes []msgpackEnvelope
	if err := msgpack.Unmarshal(frame, &envelopes); err != nil {
		var envelope msgpackEnvelope
		if err := msgpack.Unmarshal(frame, &envelope); err != nil {
			return nil, fmt.Errorf("invalid msgpack envelope: %w", err)
		}
		envelopes = []msgpackEnvelope{envelope}
	}

	events := make([]DataEvent, 0, len(envelopes))
	for _, envelope := range envelopes {
		events = append(events, DataEvent{
			Type:    envelope.Type,
			Path:    envelope.Path,
			Payload: envelope.Data,
			Codec:   MSGPACK_CODEC,
		})
	}
	return events, nil
}
