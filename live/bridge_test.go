package live

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice answers bridge requests on a loopback UDP socket.
func fakeDevice(t *testing.T, handle func(req map[string]any) (any, string)) string {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { pc.Close() })

	go func() {
		buf := make([]byte, 64*1024)
		for {
			n, addr, err := pc.ReadFrom(buf)
			if err != nil {
				return
			}
			var req map[string]any
			if err := json.Unmarshal(buf[:n], &req); err != nil {
				continue
			}
			result, errText := handle(req)
			resp := map[string]any{"id": req["id"]}
			if errText != "" {
				resp["error"] = errText
			} else {
				resp["result"] = result
			}
			payload, _ := json.Marshal(resp)
			pc.WriteTo(payload, addr)
		}
	}()
	return pc.LocalAddr().String()
}

func TestBridgeGetSetCall(t *testing.T) {
	addr := fakeDevice(t, func(req map[string]any) (any, string) {
		switch req["op"] {
		case "get":
			if req["objectId"] == "song" && req["prop"] == "signature_numerator" {
				return 4.0, ""
			}
			return nil, "no such property"
		case "set":
			return nil, ""
		case "call":
			if req["verb"] == "duplicate_clip_to_arrangement" {
				return "id 42", ""
			}
			return nil, "no such verb"
		case "exists":
			return req["objectId"] == "song", ""
		case "children":
			return []string{"1", "2"}, ""
		case "path":
			return "live_set tracks 0", ""
		}
		return nil, "unknown op"
	})

	bridge, err := DialBridge(addr)
	require.NoError(t, err)
	defer bridge.Close()

	num, err := bridge.Get("song", "signature_numerator")
	require.NoError(t, err)
	assert.Equal(t, 4.0, num)

	_, err = bridge.Get("song", "bogus")
	assert.Error(t, err)

	require.NoError(t, bridge.Set("clip1", "loop_end", 8.0))

	result, err := bridge.Call("track1", "duplicate_clip_to_arrangement", "clip1", 16.0)
	require.NoError(t, err)
	assert.Equal(t, "id 42", result)

	assert.True(t, bridge.Exists("song"))
	assert.False(t, bridge.Exists("999"))

	ids, err := bridge.Children("song", "tracks")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids)

	path, err := bridge.Path("track1")
	require.NoError(t, err)
	assert.Equal(t, "live_set tracks 0", path)
}
