package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Bridge implements API over a datagram request/response protocol to the
// device embedded in the host. Every API method is one JSON request and one
// JSON reply, correlated by a request id; replies for stale requests are
// discarded. The bridge serializes requests because the host-side device
// processes them one at a time anyway.
type Bridge struct {
	mu      sync.Mutex
	conn    net.Conn
	timeout time.Duration
	buf     []byte
}

// DialBridge connects to the host-side device at the given UDP address.
func DialBridge(addr string) (*Bridge, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing host bridge %s: %w", addr, err)
	}
	return &Bridge{
		conn:    conn,
		timeout: 5 * time.Second,
		buf:     make([]byte, 64*1024),
	}, nil
}

// Close releases the bridge connection.
func (b *Bridge) Close() error {
	return b.conn.Close()
}

type bridgeRequest struct {
	ID     string `json:"id"`
	Op     string `json:"op"`
	Object string `json:"objectId,omitempty"`
	Prop   string `json:"prop,omitempty"`
	Verb   string `json:"verb,omitempty"`
	Args   []any  `json:"args,omitempty"`
	Value  any    `json:"value,omitempty"`
}

type bridgeResponse struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (b *Bridge) roundTrip(req bridgeRequest) (json.RawMessage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	req.ID = uuid.NewString()
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	if err := b.conn.SetDeadline(time.Now().Add(b.timeout)); err != nil {
		return nil, err
	}
	if _, err := b.conn.Write(payload); err != nil {
		return nil, fmt.Errorf("bridge %s request: %w", req.Op, err)
	}

	for {
		n, err := b.conn.Read(b.buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil, fmt.Errorf("bridge %s request timed out after %s", req.Op, b.timeout)
			}
			return nil, fmt.Errorf("bridge %s response: %w", req.Op, err)
		}
		var resp bridgeResponse
		if err := json.Unmarshal(b.buf[:n], &resp); err != nil {
			return nil, fmt.Errorf("bridge %s response: %w", req.Op, err)
		}
		if resp.ID != req.ID {
			// Reply to an abandoned request; keep waiting for ours.
			continue
		}
		if resp.Error != "" {
			return nil, errors.New(resp.Error)
		}
		return resp.Result, nil
	}
}

// Exists implements API.
func (b *Bridge) Exists(id string) bool {
	raw, err := b.roundTrip(bridgeRequest{Op: "exists", Object: id})
	if err != nil {
		return false
	}
	var exists bool
	if err := json.Unmarshal(raw, &exists); err != nil {
		return false
	}
	return exists
}

// Get implements API.
func (b *Bridge) Get(id, prop string) (any, error) {
	raw, err := b.roundTrip(bridgeRequest{Op: "get", Object: id, Prop: prop})
	if err != nil {
		return nil, err
	}
	return decodeAny(raw)
}

// Set implements API.
func (b *Bridge) Set(id, prop string, value any) error {
	_, err := b.roundTrip(bridgeRequest{Op: "set", Object: id, Prop: prop, Value: value})
	return err
}

// Call implements API.
func (b *Bridge) Call(id, verb string, args ...any) (any, error) {
	raw, err := b.roundTrip(bridgeRequest{Op: "call", Object: id, Verb: verb, Args: args})
	if err != nil {
		return nil, err
	}
	return decodeAny(raw)
}

// Children implements API.
func (b *Bridge) Children(id, relation string) ([]string, error) {
	raw, err := b.roundTrip(bridgeRequest{Op: "children", Object: id, Prop: relation})
	if err != nil {
		return nil, err
	}
	var ids []string
	if len(raw) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("bridge children of %s: %w", id, err)
	}
	return ids, nil
}

// Path implements API.
func (b *Bridge) Path(id string) (string, error) {
	raw, err := b.roundTrip(bridgeRequest{Op: "path", Object: id})
	if err != nil {
		return "", err
	}
	var path string
	if err := json.Unmarshal(raw, &path); err != nil {
		return "", fmt.Errorf("bridge path of %s: %w", id, err)
	}
	return path, nil
}

func decodeAny(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
