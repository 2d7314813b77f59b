package ws

import (
	"sync"
	"time"

	"printmitra-be/internal/logger"
	"printmitra-be/internal/metrics"

	"go.uber.org/zap"
)

// Conn is the slice of a websocket connection the registry needs. gorilla's
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

const defaultWriteTimeout = 5 * time.Second

// entry pairs a connection with its own write lock. Writes serialize per
// connection (gorilla allows one writer at a time) without holding the
// registry map lock, so one slow client's write never stalls deliveries to
// other users or connect/disconnect handling.
type entry struct {
	mu   sync.Mutex
	conn Conn
}

// Registry maps a user id to at most one live connection. It is injectable
// state owned by the transport layer; nothing in this package is a process
// singleton.
type Registry struct {
	mu           sync.Mutex
	conns        map[int64]*entry
	writeTimeout time.Duration
	stats        *metrics.Realtime
}

func NewRegistry(stats *metrics.Realtime) *Registry {
	if stats == nil {
		stats = &metrics.Realtime{}
	}
	return &Registry{
		conns:        make(map[int64]*entry),
		writeTimeout: defaultWriteTimeout,
		stats:        stats,
	}
}

// Register associates conn with userID, replacing any prior connection for
// that id. The prior connection is left to close on its own.
func (r *Registry) Register(userID int64, conn Conn) {
	r.mu.Lock()
	r.conns[userID] = &entry{conn: conn}
	r.mu.Unlock()

	r.stats.Connects.Inc()
	logger.L().Debug("ws connection registered", zap.Int64("user_id", userID))
}

// Unregister removes the mapping only if conn is still the registered one for
// its user, so a late close of an old connection cannot evict its successor.
func (r *Registry) Unregister(conn Conn) {
	r.mu.Lock()
	for userID, e := range r.conns {
		if e.conn == conn {
			delete(r.conns, userID)
			r.mu.Unlock()
			r.stats.Disconnects.Inc()
			logger.L().Debug("ws connection unregistered", zap.Int64("user_id", userID))
			return
		}
	}
	r.mu.Unlock()
}

// Deliver serializes and sends the event to the user's live connection, if
// any. Best-effort, at-most-once: with no connection registered the event is
// dropped, and a failed write unregisters the dead connection. The return
// value reports whether a delivery was attempted.
func (r *Registry) Deliver(userID int64, event Event) bool {
	r.mu.Lock()
	e, ok := r.conns[userID]
	r.mu.Unlock()
	if !ok {
		r.stats.Dropped.Inc()
		return false
	}

	e.mu.Lock()
	_ = e.conn.SetWriteDeadline(time.Now().Add(r.writeTimeout))
	err := e.conn.WriteJSON(event)
	e.mu.Unlock()

	if err != nil {
		r.mu.Lock()
		if cur, still := r.conns[userID]; still && cur == e {
			delete(r.conns, userID)
		}
		r.mu.Unlock()
		_ = e.conn.Close()
		r.stats.Dropped.Inc()
		logger.L().Warn("ws delivery failed, connection dropped",
			zap.Int64("user_id", userID),
			zap.String("event", event.Type),
			zap.Error(err),
		)
		return false
	}

	r.stats.Delivered.Inc()
	return true
}

// Connected reports whether the user currently has a live connection.
func (r *Registry) Connected(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.conns[userID]
	return ok
}
