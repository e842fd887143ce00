package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Williamwenda/FoodSlotMachine/internal/engine"
	"github.com/Williamwenda/FoodSlotMachine/internal/models"
	"github.com/google/logger"
)

// MachineFactory builds a fresh, unresolved machine for a session.
type MachineFactory func(presenter engine.Presenter) *engine.Machine

// SlotSession holds the machine and the last things it showed for a single user/tenant.
type SlotSession struct {
	mu           sync.Mutex
	machine      *engine.Machine
	lastResult   *models.SpinResult
	lastStatus   models.Status
	lastError    error
	resolveOnce  sync.Once
	lastActivity time.Time
}

// ShowResult records the result of a completed spin.
func (s *SlotSession) ShowResult(result models.SpinResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResult = &result
	if result.IsJackpot {
		logger.Infof("JACKPOT! Three %s", result.Foods[0].Name)
	}
}

// ShowStatus records the connectivity status of the latest resolution.
func (s *SlotSession) ShowStatus(status models.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastStatus = status
}

// View is a point-in-time copy of a session for rendering.
type View struct {
	Status     models.Status
	Pool       models.PoolInfo
	Ready      bool
	Endpoint   string
	LastResult *models.SpinResult
	Err        error
}

func (s *SlotSession) view() View {
	// The machine calls back into the session while resolving, so read it
	// before taking the session lock.
	info, ready := s.machine.Info()
	endpoint := s.machine.Endpoint()

	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Status:     s.lastStatus,
		Pool:       info,
		Ready:      ready,
		Endpoint:   endpoint,
		LastResult: s.lastResult,
		Err:        s.lastError,
	}
}

func (s *SlotSession) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
}

// SlotService manages one slot machine per session.
type SlotService struct {
	mu         sync.RWMutex
	sessions   map[string]*SlotSession // Key: tenantID
	newMachine MachineFactory
}

// NewSlotService creates and initializes a new SlotService.
func NewSlotService(factory MachineFactory) *SlotService {
	return &SlotService{
		sessions:   make(map[string]*SlotSession),
		newMachine: factory,
	}
}

// getSession returns a session for a tenant, creating one if it doesn't exist.
func (s *SlotService) getSession(tenantID string) *SlotSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[tenantID]
	if !exists {
		session = &SlotSession{}
		session.machine = s.newMachine(session)
		s.sessions[tenantID] = session
	}
	session.lastActivity = time.Now()
	return session
}

// ensureResolved resolves the session's catalog the first time it is used.
// Concurrent first requests wait for the same resolution.
func (s *SlotService) ensureResolved(ctx context.Context, session *SlotSession) {
	session.resolveOnce.Do(func() {
		session.setError(session.machine.Resolve(ctx))
	})
}

// Session returns a snapshot of the tenant's machine, resolving its catalog on first use.
func (s *SlotService) Session(ctx context.Context, tenantID string) View {
	session := s.getSession(tenantID)
	s.ensureResolved(ctx, session)
	return session.view()
}

// Spin spins the tenant's machine. engine.ErrSpinInProgress means the request
// was ignored because another spin is still running.
func (s *SlotService) Spin(ctx context.Context, tenantID string) (models.SpinResult, error) {
	session := s.getSession(tenantID)
	s.ensureResolved(ctx, session)
	return session.machine.Spin()
}

// SetEndpoint points the tenant's machine at a new catalog endpoint and reloads it.
func (s *SlotService) SetEndpoint(ctx context.Context, tenantID, endpoint string) (View, error) {
	session := s.getSession(tenantID)
	err := session.machine.SetEndpoint(ctx, endpoint)
	if errors.Is(err, engine.ErrEmptyEndpoint) {
		return session.view(), err
	}

	// An explicit endpoint change replaces the initial resolution.
	session.resolveOnce.Do(func() {})
	session.setError(err)
	return session.view(), err
}

// CleanUpInactiveSessions removes sessions that have been inactive for longer than maxIdle.
func (s *SlotService) CleanUpInactiveSessions(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for tenantID, session := range s.sessions {
		if session.machine.Spinning() {
			continue
		}
		if time.Since(session.lastActivity) > maxIdle {
			logger.Infof("Removing inactive session for tenant: %s", tenantID)
			delete(s.sessions, tenantID)
			removed++
		}
	}
	return removed
}

// ClearSession removes all data associated with a specific tenant.
func (s *SlotService) ClearSession(tenantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tenantID)
	logger.Infof("Cleared session for tenant: %s", tenantID)
}

// SessionCount returns the number of live sessions.
func (s *SlotService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
