// Package feedmsg contains the message types for the marker feed between the
// server and clients.
package feedmsg

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hyphengolang/prelude/types/suid"
)

type (
	MsgType int

	Envelope struct {
		// Message identifier
		ID uuid.UUID `json:"id"`
		// ConnectMsg | SnapshotMsg
		Typ MsgType `json:"type"`
		// Actual message data.
		Payload json.RawMessage `json:"payload"`
	}

	// ConnectMsg is the server hello sent once per feed subscription.
	ConnectMsg struct {
		ClientID  suid.UUID `json:"clientId"`
		LayerName string    `json:"layerName"`
	}

	// MarkerInfo is one marker in a snapshot.
	MarkerInfo struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
		Lat  float64   `json:"lat"`
		Lon  float64   `json:"lon"`
		// Glyph drawn for the marker; may be empty for the layer default.
		Icon string `json:"icon"`
	}

	// SnapshotMsg carries the full marker set of the subscribed layer. The
	// server sends one after connect and again whenever markers are added,
	// removed, or replaced.
	SnapshotMsg struct {
		Markers []MarkerInfo `json:"markers"`
	}
)

const (
	CONNECT MsgType = iota
	SNAPSHOT
)

func (e *Envelope) SetPayload(payload any) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	e.Payload = p
	return nil
}

func (e *Envelope) Unwrap(msg any) error {
	return json.Unmarshal(e.Payload, msg)
}

func (t *MsgType) UnmarshalJSON(data []byte) error {
	var rawType string
	err := json.Unmarshal(data, &rawType)
	if err != nil {
		return err
	}

	switch rawType {
	case "connect":
		*t = CONNECT
	case "snapshot":
		*t = SNAPSHOT
	default:
		return fmt.Errorf("unknown type: %s", rawType)
	}
	return nil
}

func (t *MsgType) MarshalJSON() ([]byte, error) {
	switch *t {
	case CONNECT:
		return []byte(`"connect"`), nil
	case SNAPSHOT:
		return []byte(`"snapshot"`), nil
	}
	return []byte{}, fmt.Errorf("unknown MsgTyp value: %d", *t)
}
