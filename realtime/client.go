// Package realtime is a minimal client for the Supabase Realtime channel
// protocol (Phoenix framing over a websocket): join one table topic, answer
// heartbeats, and hand postgres change events to a callback.
package realtime

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/b-sukumar/salondost-dashboard/metrics"
)

const (
	heartbeatInterval = 30 * time.Second
	reconnectBackoff  = 5 * time.Second
)

// Event is one postgres change notification. Record carries the new row for
// INSERT/UPDATE; Old carries what the replication stream exposes of the
// deleted row for DELETE (usually just the primary key).
type Event struct {
	Type   string
	Record json.RawMessage
	Old    json.RawMessage
}

type phoenixMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

type changePayload struct {
	Record    json.RawMessage `json:"record"`
	OldRecord json.RawMessage `json:"old_record"`
}

type Client struct {
	baseURL string
	apiKey  string
	log     *zap.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

func NewClient(supabaseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(supabaseURL, "/"),
		apiKey:  apiKey,
		log:     log,
		closed:  make(chan struct{}),
	}
}

// Endpoint is the realtime websocket URL derived from the project URL.
func (c *Client) Endpoint() string {
	return c.baseURL + "/realtime/v1/websocket?apikey=" + c.apiKey + "&vsn=1.0.0"
}

// Close releases the subscription. Safe to call more than once; only the
// first call has any effect.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// Subscribe keeps one subscription to all change events on table alive until
// ctx is cancelled or Close is called. Connection failures are logged and
// retried after a fixed backoff; between attempts callers keep serving their
// last snapshot.
func (c *Client) Subscribe(ctx context.Context, table string, onChange func(Event)) {
	for {
		if err := c.runOnce(ctx, table, onChange); err != nil {
			c.log.Warn("realtime connection lost", zap.Error(err), zap.String("table", table))
		}

		select {
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		case <-time.After(reconnectBackoff):
			metrics.RealtimeReconnectsTotal.Inc()
		}
	}
}

func (c *Client) runOnce(ctx context.Context, table string, onChange func(Event)) error {
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-c.closed:
			cancel()
		case <-connCtx.Done():
		}
	}()

	conn, _, err := websocket.Dial(connCtx, c.Endpoint(), nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	topic := "realtime:public:" + table
	join := phoenixMessage{Topic: topic, Event: "phx_join", Payload: json.RawMessage(`{}`), Ref: "1"}
	if err := wsjson.Write(connCtx, conn, join); err != nil {
		return err
	}
	c.log.Info("realtime subscribed", zap.String("topic", topic))

	go c.heartbeat(connCtx, conn)

	for {
		var msg phoenixMessage
		if err := wsjson.Read(connCtx, conn, &msg); err != nil {
			return err
		}

		switch msg.Event {
		case "INSERT", "UPDATE", "DELETE":
			metrics.RealtimeEventsTotal.WithLabelValues(msg.Event).Inc()
			var payload changePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				c.log.Warn("realtime payload unreadable", zap.Error(err))
				payload = changePayload{}
			}
			onChange(Event{Type: msg.Event, Record: payload.Record, Old: payload.OldRecord})
		case "phx_reply", "phx_close":
			// join/heartbeat acknowledgements
		case "phx_error":
			c.log.Warn("realtime channel error", zap.String("topic", msg.Topic))
		}
	}
}

func (c *Client) heartbeat(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ref := 2
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			msg := phoenixMessage{Topic: "phoenix", Event: "heartbeat", Payload: json.RawMessage(`{}`), Ref: strconv.Itoa(ref)}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				return
			}
			ref++
		}
	}
}
