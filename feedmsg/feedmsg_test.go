package feedmsg_test

import (
	"encoding/json"
	"testing"

	"github.com/NYUeServ/marker-navigation/feedmsg"
	"github.com/stretchr/testify/require"
)

func TestMsgTypeMarshaling(t *testing.T) {
	t.Run("unmarshals type from JSON", func(t *testing.T) {
		message := []byte(`{
    "id": "7b0f33ba-8a50-446d-aaa4-4de4aa96fc6c",
    "type": "snapshot",
    "payload": {
        "markers": [
            {"id": "0c0144ff-9e1e-47a5-b9cd-7ac8e100b1a3", "name": "Bobst Library", "lat": 40.7295, "lon": -73.9972, "icon": "●"}
        ]
    }
}`)

		var got feedmsg.Envelope
		err := json.Unmarshal(message, &got)
		require.NoError(t, err)
		require.Equal(t, got.Typ, feedmsg.SNAPSHOT)

		var snap feedmsg.SnapshotMsg
		require.NoError(t, got.Unwrap(&snap))
		require.Len(t, snap.Markers, 1)
		require.Equal(t, "Bobst Library", snap.Markers[0].Name)
		require.InDelta(t, 40.7295, snap.Markers[0].Lat, 1e-9)
	})

	t.Run("marshals type to JSON", func(t *testing.T) {
		message := feedmsg.Envelope{
			Typ: feedmsg.CONNECT,
		}

		got, err := json.Marshal(&message)
		require.NoError(t, err)
		want := `"type":"connect"`
		require.Containsf(t, string(got), want, "JSON does not contain [ %s ]\n%s", want, string(got))
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		var got feedmsg.Envelope
		err := json.Unmarshal([]byte(`{"type": "telemetry"}`), &got)
		require.Error(t, err)
	})
}
