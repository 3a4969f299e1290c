package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/kingsmud/kings/internal/session"
)

// ConnectionManager hands accepted connections to the session layer.
// Session errors end that one connection; they never reach the accept
// loop.
type ConnectionManager struct {
	sessions *session.Manager
}

func NewConnectionManager(sessions *session.Manager) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.sessions.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}
