package app

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/sgurov/coderoom/internal/core"
	"github.com/sgurov/coderoom/internal/protocol"
)

// fakeConn captures every frame sent to it so tests can assert on the
// decoded events.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	dead   bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dead {
		return errors.New("connection closed")
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

// events decodes every captured frame of the given type.
func (f *fakeConn) events(t *testing.T, typ protocol.EventType) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []map[string]any
	for _, fr := range f.frames {
		var m map[string]any
		if err := json.Unmarshal(fr, &m); err != nil {
			t.Fatalf("captured frame is not JSON: %v", err)
		}
		if m["type"] == string(typ) {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeConn) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}
