package recognizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const voskIOTimeout = 10 * time.Second

// VoskEngine talks to a vosk-server instance over its websocket protocol:
// one binary audio message out, one JSON result message back. A result with
// a "text" field closes the current utterance; "partial" carries the
// revisable hypothesis. `{"eof": 1}` flushes the trailing final.
//
// The connection is dialed lazily on the first Feed and dropped on Reset,
// which is how the server side discards utterance state between sessions.
type VoskEngine struct {
	url        string
	sampleRate int
	dialer     *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

type voskResult struct {
	Text    *string `json:"text"`
	Partial *string `json:"partial"`
}

func NewVoskEngine(serverURL string, sampleRate int) *VoskEngine {
	return &VoskEngine{
		url:        serverURL,
		sampleRate: sampleRate,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
		},
	}
}

// connect dials the server and sends the per-connection recognizer config.
// Caller holds e.mu.
func (e *VoskEngine) connect(ctx context.Context) error {
	if e.conn != nil {
		return nil
	}

	conn, _, err := e.dialer.DialContext(ctx, e.url, nil)
	if err != nil {
		return fmt.Errorf("dial vosk server %s: %w", e.url, err)
	}

	cfg := fmt.Sprintf(`{"config": {"sample_rate": %d}}`, e.sampleRate)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(cfg)); err != nil {
		conn.Close()
		return fmt.Errorf("send recognizer config: %w", err)
	}

	e.conn = conn
	return nil
}

func (e *VoskEngine) Feed(ctx context.Context, frame []byte) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.connect(ctx); err != nil {
		return Result{}, err
	}

	if err := e.setDeadlines(ctx); err != nil {
		return Result{}, err
	}

	if err := e.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		e.drop()
		return Result{}, fmt.Errorf("send audio frame: %w", err)
	}

	res, err := e.readResult()
	if err != nil {
		e.drop()
		return Result{}, err
	}
	return res, nil
}

func (e *VoskEngine) Finalize(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.conn == nil {
		return "", nil
	}

	if err := e.setDeadlines(ctx); err != nil {
		e.drop()
		return "", err
	}

	if err := e.conn.WriteMessage(websocket.TextMessage, []byte(`{"eof" : 1}`)); err != nil {
		e.drop()
		return "", fmt.Errorf("send eof: %w", err)
	}

	res, err := e.readResult()
	// The server closes the connection after eof either way.
	e.drop()
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (e *VoskEngine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drop()
	return nil
}

func (e *VoskEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drop()
	return nil
}

// readResult reads and decodes one JSON result message. Caller holds e.mu.
func (e *VoskEngine) readResult() (Result, error) {
	_, data, err := e.conn.ReadMessage()
	if err != nil {
		return Result{}, fmt.Errorf("read recognizer result: %w", err)
	}

	var res voskResult
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, fmt.Errorf("decode recognizer result %q: %w", data, err)
	}

	if res.Text != nil {
		return Result{Complete: true, Text: strings.TrimSpace(*res.Text)}, nil
	}
	if res.Partial != nil {
		return Result{Text: strings.TrimSpace(*res.Partial)}, nil
	}
	return Result{}, fmt.Errorf("recognizer result has neither text nor partial: %q", data)
}

func (e *VoskEngine) setDeadlines(ctx context.Context) error {
	deadline := time.Now().Add(voskIOTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := e.conn.SetReadDeadline(deadline); err != nil {
		return err
	}
	return e.conn.SetWriteDeadline(deadline)
}

// drop closes and forgets the connection. Caller holds e.mu.
func (e *VoskEngine) drop() {
	if e.conn == nil {
		return
	}
	if err := e.conn.Close(); err != nil {
		log.Printf("vosk: close connection: %v", err)
	}
	e.conn = nil
}
