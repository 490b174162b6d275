package serve

import (
	"bytes"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/voxelsplace/vxl/vxl"
)

func TestServerStreamsWholeMap(t *testing.T) {
	m, err := vxl.Create(32, 32, 32, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	m.Set(5, 5, 3, 0x886644)
	want := m.Write()

	s := NewServer(m, 1024, log.New(io.Discard, "", 0))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var got bytes.Buffer
	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if kind == websocket.TextMessage {
			if string(msg) != "done" {
				t.Fatalf("unexpected text message %q", msg)
			}
			break
		}
		if len(msg) > 1024 {
			t.Fatalf("chunk of %d bytes exceeds chunk size", len(msg))
		}
		got.Write(msg)
	}

	if !bytes.Equal(got.Bytes(), want) {
		t.Fatalf("streamed %d bytes differ from Write's %d", got.Len(), len(want))
	}
}
