package datasync

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jypelle/vekimeteo/internal/version"
	"github.com/sirupsen/logrus"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const websocketReadLimit = 1 << 20

type SubscriptionRequest struct {
	Op   string `json:"op"`
	Path string `json:"path,omitempty"`
}

const (
	SUBSCRIBE_OP   = "subscribe"
	UNSUBSCRIBE_OP = "unsubscribe"
)

// WebsocketBackend reads text frames as JSON envelopes and binary frames as
// msgpack envelopes.
type WebsocketBackend struct {
	url string
}

func NewWebsocketBackend(url string) *WebsocketBackend {
	return &WebsocketBackend{url: url}
}

func (b *WebsocketBackend) Name() string {
	return "websocket"
}

func (b *WebsocketBackend) Connect(ctx context.Context, clientId string) (Session, error) {
	header := http.Header{}
	header.Set(CLIENT_ID_HEADER, clientId)
	header.Set("User-Agent", version.AppVersion.UserAgent())

	conn, _, err := websocket.Dial(ctx, b.url, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return nil, fmt.Errorf("unable to dial %s: %w", b.url, err)
	}
	conn.SetReadLimit(websocketReadLimit)

	return &websocketSession{conn: conn}, nil
}

type websocketSession struct {
	conn *websocket.Conn
}

func (s *websocketSession) Listen(ctx context.Context, path string, deliver func([]DataEvent)) error {
	if err := wsjson.Write(ctx, s.conn, SubscriptionRequest{Op: SUBSCRIBE_OP, Path: path}); err != nil {
		return fmt.Errorf("unable to subscribe to %s: %w", path, err)
	}

	for {
		messageType, frame, err := s.conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("websocket read: %w", err)
		}

		var events []DataEvent
		if messageType == websocket.MessageBinary {
			events, err = ParseMsgpackFrame(frame)
		} else {
			events, err = ParseJSONFrame(frame)
		}
		if err != nil {
			logrus.Warnf("Ignore websocket frame: %v", err)
			continue
		}
		deliver(events)
	}
}

func (s *websocketSession) Unsubscribe(ctx context.Context) error {
	return wsjson.Write(ctx, s.conn, SubscriptionRequest{Op: UNSUBSCRIBE_OP})
}

func (s *websocketSession) Close() error {
	return s.conn.Close(websocket.StatusNormalClosure, "")
}
