package datasync

import "context"

const CLIENT_ID_HEADER = "X-Vekimeteo-Client"

// Backend opens sessions to the remote data source.
type Backend interface {
	Name() string
	Connect(ctx context.Context, clientId string) (Session, error)
}

// Session is one live connection. Listen subscribes to path and delivers
// batches until the link drops or ctx is done; it always returns a non nil
// error. Unsubscribe and Close may be called while Listen runs.
type Session interface {
	Listen(ctx context.Context, path string, deliver func([]DataEvent)) error
	Unsubscribe(ctx context.Context) error
	Close() error
}
