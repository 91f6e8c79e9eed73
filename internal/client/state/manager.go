package state

import (
	"context"
	"fmt"
)

// BatchSize is the number of local increments that make up one completed
// batch. Every time the local count reaches an exact multiple of BatchSize,
// exactly one server increment is issued: the server tracks completed
// batches, the client tracks raw increments. The two counts diverge by
// design and must not be unified.
const BatchSize = 108

// ServerAPI is the slice of the backend the state manager depends on.
// The HTTP client in client/api satisfies it.
type ServerAPI interface {
	Count(ctx context.Context, userID uint) (uint, error)
	Increment(ctx context.Context, userID uint) (uint, error)
	Reset(ctx context.Context, userID uint) error
	Logout(ctx context.Context, userID uint) error
}

// Manager owns the optimistic local count: every mutation is applied and
// persisted locally first, and server calls are best-effort.
type Manager struct {
	store  *Store
	server ServerAPI
	st     *State
}

// NewManager loads the persisted state and returns a ready manager.
func NewManager(store *Store, server ServerAPI) (*Manager, error) {
	st, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Manager{store: store, server: server, st: st}, nil
}

// LoggedIn reports whether a user identity is stored locally.
func (m *Manager) LoggedIn() bool {
	return m.st.UserID != 0
}

// UserID returns the stored bearer identity (0 when logged out).
func (m *Manager) UserID() uint {
	return m.st.UserID
}

// Count returns the current local count.
func (m *Manager) Count() uint {
	return m.st.LocalCount
}

// Batches returns the number of completed batches (count / BatchSize).
func (m *Manager) Batches() uint {
	return m.st.LocalCount / BatchSize
}

// Progress returns the position within the current batch (count % BatchSize).
func (m *Manager) Progress() uint {
	return m.st.LocalCount % BatchSize
}

// SetUser records a successful login and persists it.
func (m *Manager) SetUser(userID uint, token string) error {
	m.st.UserID = userID
	m.st.Token = token
	return m.store.Save(m.st)
}

// SyncOnLoad reconciles the local count with the server on dashboard load:
// whichever of the two is larger wins. This tolerates increments made while
// the server was unreachable but does not merge divergent histories.
func (m *Manager) SyncOnLoad(ctx context.Context) error {
	if !m.LoggedIn() {
		return fmt.Errorf("not logged in")
	}
	remote, err := m.server.Count(ctx, m.st.UserID)
	if err != nil {
		return fmt.Errorf("failed to load server count: %w", err)
	}
	if remote > m.st.LocalCount {
		m.st.LocalCount = remote
		if err := m.store.Save(m.st); err != nil {
			return err
		}
	}
	return nil
}

// Increment applies one optimistic local increment and persists it. When the
// new count is an exact multiple of BatchSize, a single server increment is
// issued. The sync is best-effort: its failure is reported through syncErr
// but never rolls back the local increment.
func (m *Manager) Increment(ctx context.Context) (count uint, synced bool, syncErr error) {
	m.st.LocalCount++
	if err := m.store.Save(m.st); err != nil {
		m.st.LocalCount--
		return m.st.LocalCount, false, err
	}

	if m.st.LocalCount%BatchSize != 0 {
		return m.st.LocalCount, false, nil
	}

	if _, err := m.server.Increment(ctx, m.st.UserID); err != nil {
		return m.st.LocalCount, false, fmt.Errorf("batch sync failed: %w", err)
	}
	m.st.LastSyncedCount = m.st.LocalCount
	if err := m.store.Save(m.st); err != nil {
		return m.st.LocalCount, true, err
	}
	return m.st.LocalCount, true, nil
}

// Reset zeroes the local count immediately and fires a best-effort server
// reset. A failing server call does not roll back the local zeroing.
func (m *Manager) Reset(ctx context.Context) error {
	m.st.LocalCount = 0
	m.st.LastSyncedCount = 0
	if err := m.store.Save(m.st); err != nil {
		return err
	}
	if err := m.server.Reset(ctx, m.st.UserID); err != nil {
		return fmt.Errorf("server reset failed (local count is zeroed): %w", err)
	}
	return nil
}

// Logout fires a best-effort server logout, then unconditionally clears all
// locally persisted state.
func (m *Manager) Logout(ctx context.Context) error {
	var logoutErr error
	if m.LoggedIn() {
		logoutErr = m.server.Logout(ctx, m.st.UserID)
	}
	m.st = &State{}
	if err := m.store.Clear(); err != nil {
		return err
	}
	return logoutErr
}
