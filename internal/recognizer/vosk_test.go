package recognizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

// fakeVoskServer speaks the vosk-server websocket protocol: one JSON reply
// per binary audio message, a final reply on eof.
func fakeVoskServer(t *testing.T, replies []string, final string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	i := 0
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		// First message must be the recognizer config.
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if !strings.Contains(string(data), "sample_rate") {
			t.Errorf("first message should carry sample_rate, got %q", data)
			return
		}

		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if mt == websocket.TextMessage && strings.Contains(string(data), "eof") {
				conn.WriteMessage(websocket.TextMessage, []byte(final))
				return
			}
			reply := replies[i%len(replies)]
			i++
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestVoskEngineFeed(t *testing.T) {
	srv := fakeVoskServer(t, []string{
		`{"partial": "turn"}`,
		`{"partial": "turn on"}`,
		`{"text": "turn on the lights"}`,
	}, `{"text": ""}`)
	defer srv.Close()

	engine := NewVoskEngine(wsURL(srv), 16000)
	defer engine.Close()

	ctx := context.Background()
	frame := make([]byte, 8000)

	res, err := engine.Feed(ctx, frame)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if res.Complete || res.Text != "turn" {
		t.Errorf("first result = %+v, want partial %q", res, "turn")
	}

	res, err = engine.Feed(ctx, frame)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if res.Complete || res.Text != "turn on" {
		t.Errorf("second result = %+v, want partial %q", res, "turn on")
	}

	res, err = engine.Feed(ctx, frame)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if !res.Complete || res.Text != "turn on the lights" {
		t.Errorf("third result = %+v, want final %q", res, "turn on the lights")
	}
}

func TestVoskEngineFinalize(t *testing.T) {
	srv := fakeVoskServer(t, []string{
		`{"partial": "hello wor"}`,
	}, `{"text": "hello world"}`)
	defer srv.Close()

	engine := NewVoskEngine(wsURL(srv), 16000)
	defer engine.Close()

	ctx := context.Background()

	if _, err := engine.Feed(ctx, make([]byte, 8000)); err != nil {
		t.Fatalf("Feed failed: %v", err)
	}

	text, err := engine.Finalize(ctx)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if text != "hello world" {
		t.Errorf("Finalize = %q, want %q", text, "hello world")
	}
}

func TestVoskEngineFinalizeWithoutAudio(t *testing.T) {
	// No connection was ever opened; nothing to flush.
	engine := NewVoskEngine("ws://127.0.0.1:1", 16000)
	text, err := engine.Finalize(context.Background())
	if err != nil {
		t.Fatalf("Finalize on idle engine failed: %v", err)
	}
	if text != "" {
		t.Errorf("Finalize on idle engine = %q, want empty", text)
	}
}

func TestVoskEngineResetReconnects(t *testing.T) {
	srv := fakeVoskServer(t, []string{`{"partial": "a"}`}, `{"text": ""}`)
	defer srv.Close()

	engine := NewVoskEngine(wsURL(srv), 16000)
	defer engine.Close()

	ctx := context.Background()

	if _, err := engine.Feed(ctx, make([]byte, 100)); err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if err := engine.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	// A fresh connection is dialed transparently after Reset.
	res, err := engine.Feed(ctx, make([]byte, 100))
	if err != nil {
		t.Fatalf("Feed after Reset failed: %v", err)
	}
	if res.Text != "a" {
		t.Errorf("result after Reset = %+v, want partial %q", res, "a")
	}
}

func TestVoskEngineDialFailure(t *testing.T) {
	engine := NewVoskEngine("ws://127.0.0.1:1", 16000)
	if _, err := engine.Feed(context.Background(), make([]byte, 100)); err == nil {
		t.Fatal("Feed should fail when the server is unreachable")
	}
}

func TestVoskEngineWhitespaceTrimmed(t *testing.T) {
	srv := fakeVoskServer(t, []string{`{"partial": "  padded  "}`}, `{"text": " done "}`)
	defer srv.Close()

	engine := NewVoskEngine(wsURL(srv), 16000)
	defer engine.Close()

	ctx := context.Background()
	res, err := engine.Feed(ctx, make([]byte, 100))
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if res.Text != "padded" {
		t.Errorf("partial text = %q, want trimmed %q", res.Text, "padded")
	}

	text, err := engine.Finalize(ctx)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if text != "done" {
		t.Errorf("final text = %q, want trimmed %q", text, "done")
	}
}
