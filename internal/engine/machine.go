package engine

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Williamwenda/FoodSlotMachine/internal/catalog"
	"github.com/Williamwenda/FoodSlotMachine/internal/models"
	"github.com/google/logger"
)

// ErrEmptyEndpoint is returned by SetEndpoint for a blank endpoint.
var ErrEmptyEndpoint = errors.New("engine: api endpoint is empty")

// Presenter displays what a machine produces. ShowResult is called exactly
// once per completed spin, ShowStatus once per catalog resolution.
type Presenter interface {
	ShowResult(result models.SpinResult)
	ShowStatus(status models.Status)
}

// Config holds everything a Machine needs.
type Config struct {
	Endpoint string
	Client   *http.Client
	Local    catalog.Provider
	PoolSize int // 0 draws from the whole catalog
	Rand     Rand
}

// drawState is replaced as a whole on every resolution and never modified,
// so a spin holding an old pointer keeps a consistent view.
type drawState struct {
	snapshot catalog.Snapshot
	pool     []models.FoodRecord
	info     models.PoolInfo
}

// Machine is one slot machine: its catalog, its drawing pool and the guard
// that keeps spins from overlapping.
type Machine struct {
	client    *http.Client
	local     catalog.Provider
	poolSize  int
	rng       *LockedRand
	presenter Presenter

	resolveMu sync.Mutex
	endpoint  string

	state    atomic.Pointer[drawState]
	spinning atomic.Bool
}

// NewMachine returns a machine that has not resolved its catalog yet.
func NewMachine(cfg Config, presenter Presenter) *Machine {
	if cfg.Local == nil {
		cfg.Local = catalog.NewLocalProvider()
	}
	if cfg.Rand == nil {
		cfg.Rand = NewRand(0)
	}
	if presenter == nil {
		presenter = LogPresenter{}
	}
	return &Machine{
		client:    cfg.Client,
		local:     cfg.Local,
		poolSize:  cfg.PoolSize,
		rng:       Locked(cfg.Rand),
		presenter: presenter,
		endpoint:  strings.TrimSpace(cfg.Endpoint),
	}
}

// Endpoint returns the catalog endpoint currently configured.
func (m *Machine) Endpoint() string {
	m.resolveMu.Lock()
	defer m.resolveMu.Unlock()
	return m.endpoint
}

// Resolve loads the catalog and rebuilds the drawing pool. When no provider
// yields enough foods the machine is left without a pool and cannot spin.
func (m *Machine) Resolve(ctx context.Context) error {
	m.resolveMu.Lock()
	defer m.resolveMu.Unlock()
	return m.resolveLocked(ctx)
}

// SetEndpoint switches the catalog endpoint and resolves again. Calling it
// twice with the same endpoint builds two independent snapshots.
func (m *Machine) SetEndpoint(ctx context.Context, endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ErrEmptyEndpoint
	}

	m.resolveMu.Lock()
	defer m.resolveMu.Unlock()
	m.endpoint = endpoint
	return m.resolveLocked(ctx)
}

func (m *Machine) resolveLocked(ctx context.Context) error {
	resolver := catalog.Resolver{Local: m.local, Endpoint: m.endpoint}
	if m.endpoint != "" {
		resolver.Remote = catalog.NewRemoteProvider(m.endpoint, m.client, m.rng)
	}

	snapshot, status, err := resolver.Resolve(ctx)
	if err != nil {
		m.state.Store(nil)
		m.presenter.ShowStatus(status)
		logger.Errorf("Catalog resolution failed: %v", err)
		return err
	}

	pool := SelectPool(snapshot.Records(), m.poolSize, m.rng)
	info := DescribePool(pool, snapshot.Len())
	if info.Testing {
		logger.Infof("Testing mode: using %d of %d items, jackpot probability %.2f%% (1 in %d)",
			info.Size, info.CatalogSize, info.Probability*100, info.OneIn)
	} else {
		logger.Infof("Using all %d items, jackpot probability %.2f%% (1 in %d)",
			info.Size, info.Probability*100, info.OneIn)
	}

	m.state.Store(&drawState{snapshot: snapshot, pool: pool, info: info})
	m.presenter.ShowStatus(status)
	return nil
}

// Spin draws three foods and hands the result to the presenter. A spin
// requested while another is still being presented returns ErrSpinInProgress
// and does nothing else. The result is fixed before the presenter sees it.
func (m *Machine) Spin() (models.SpinResult, error) {
	if !m.spinning.CompareAndSwap(false, true) {
		return models.SpinResult{}, ErrSpinInProgress
	}
	defer m.spinning.Store(false)

	st := m.state.Load()
	if st == nil {
		return models.SpinResult{}, catalog.ErrInsufficientPool
	}

	result, err := Spin(st.pool, m.rng)
	if err != nil {
		return models.SpinResult{}, err
	}
	m.presenter.ShowResult(result)
	return result, nil
}

// Spinning reports whether a spin is currently outstanding.
func (m *Machine) Spinning() bool {
	return m.spinning.Load()
}

// Ready reports whether the machine has a pool to draw from.
func (m *Machine) Ready() bool {
	return m.state.Load() != nil
}

// Pool returns a copy of the current drawing pool.
func (m *Machine) Pool() []models.FoodRecord {
	st := m.state.Load()
	if st == nil {
		return nil
	}
	out := make([]models.FoodRecord, len(st.pool))
	copy(out, st.pool)
	return out
}

// Catalog returns the current catalog snapshot.
func (m *Machine) Catalog() catalog.Snapshot {
	st := m.state.Load()
	if st == nil {
		return catalog.Snapshot{}
	}
	return st.snapshot
}

// Info describes the current pool. ok is false before a successful resolution.
func (m *Machine) Info() (info models.PoolInfo, ok bool) {
	st := m.state.Load()
	if st == nil {
		return models.PoolInfo{}, false
	}
	return st.info, true
}

// LogPresenter writes results and status changes to the log.
type LogPresenter struct{}

func (LogPresenter) ShowResult(result models.SpinResult) {
	if result.IsJackpot {
		logger.Infof("JACKPOT! %s x3", result.Foods[0].Name)
		return
	}
	logger.Infof("Spun %s | %s | %s", result.Foods[0].Name, result.Foods[1].Name, result.Foods[2].Name)
}

func (LogPresenter) ShowStatus(status models.Status) {
	logger.Infof("Catalog status: %s", status.Message())
}
