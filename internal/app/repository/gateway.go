package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/Teapot-Agency/whisper-trascription-app/internal/app/errors"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/repository/memory"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/repository/pg"
)

// Backend identifies which store the gateway is operating against.
type Backend string

const (
	BackendRemote Backend = "remote"
	BackendLocal  Backend = "local-fallback"
)

const defaultProbeTimeout = 5 * time.Second

// Gateway selects a storage backend once at construction: remote Postgres
// when a DSN is configured and reachable, the in-memory store otherwise.
// The first remote failure after selection flips the gateway to fallback for
// the rest of the process; Reprobe is the only way back. Datasets are never
// merged across a switch.
type Gateway struct {
	mu           sync.RWMutex
	dsn          string
	probeTimeout time.Duration
	logger       *zap.Logger

	active  TranscriptionStore
	local   *memory.Store
	backend Backend
}

// NewGateway probes the configured remote backend and picks the active
// store. An empty dsn skips the probe entirely.
func NewGateway(ctx context.Context, dsn string, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gateway{
		dsn:          dsn,
		probeTimeout: defaultProbeTimeout,
		logger:       logger,
		local:        memory.NewStore(),
	}
	g.active = g.local
	g.backend = BackendLocal

	if dsn == "" {
		logger.Info("remote storage not configured, using in-memory fallback")
		return g
	}

	if err := g.connectRemote(ctx); err != nil {
		logger.Warn("remote storage unreachable, using in-memory fallback", zap.Error(err))
	}
	return g
}

// Backend reports the currently active backend.
func (g *Gateway) Backend() Backend {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.backend
}

// Reprobe re-evaluates remote reachability on demand. It never runs
// implicitly; fallback selected at startup is otherwise permanent.
func (g *Gateway) Reprobe(ctx context.Context) (Backend, error) {
	if g.dsn == "" {
		return g.Backend(), nil
	}
	if g.Backend() == BackendRemote {
		return BackendRemote, nil
	}
	if err := g.connectRemote(ctx); err != nil {
		return g.Backend(), apperrors.Wrap(err, apperrors.KindStorage, "remote storage still unreachable")
	}
	return BackendRemote, nil
}

func (g *Gateway) connectRemote(ctx context.Context) error {
	db, err := pg.Open(g.dsn)
	if err != nil {
		return err
	}
	if err := pg.Ping(ctx, db, g.probeTimeout); err != nil {
		db.Close()
		return err
	}

	store := pg.NewStore(db)
	if !g.adoptRemote(store) {
		store.Close()
	}
	return nil
}

// adoptRemote installs store as the remote backend. Concurrent probes can
// both pass the pre-check; the backend is re-checked under the write lock so
// only one connection survives and the loser gets closed by the caller.
func (g *Gateway) adoptRemote(store TranscriptionStore) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.backend == BackendRemote {
		return false
	}
	g.active = store
	g.backend = BackendRemote
	g.logger.Info("remote storage backend active")
	return true
}

// store returns the active backend for one operation.
func (g *Gateway) store() (TranscriptionStore, Backend) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active, g.backend
}

// fallBack flips to the local store after a remote failure. Reported once:
// subsequent calls run against the local store without touching the remote.
func (g *Gateway) fallBack(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.backend != BackendRemote {
		return
	}
	g.logger.Error("remote storage failed, switching to in-memory fallback", zap.Error(err))
	g.active.Close()
	g.active = g.local
	g.backend = BackendLocal
}

// Add assigns the record's identity and persists it. The id is generated
// here exactly once and never changes afterwards.
func (g *Gateway) Add(ctx context.Context, record model.TranscriptionRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.Date == "" {
		record.Date = record.CreatedAt.Format(model.DateLayout)
	}

	store, backend := g.store()
	id, err := store.Add(ctx, record)
	if err != nil && backend == BackendRemote {
		g.fallBack(err)
		return "", apperrors.Wrap(err, apperrors.KindStorage, "remote storage failed")
	}
	return id, err
}

func (g *Gateway) GetAll(ctx context.Context) ([]model.TranscriptionRecord, error) {
	store, backend := g.store()
	records, err := store.GetAll(ctx)
	if err != nil && backend == BackendRemote {
		g.fallBack(err)
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "remote storage failed")
	}
	return records, err
}

func (g *Gateway) Delete(ctx context.Context, id string) (bool, error) {
	store, backend := g.store()
	deleted, err := store.Delete(ctx, id)
	if err != nil && backend == BackendRemote {
		g.fallBack(err)
		return false, apperrors.Wrap(err, apperrors.KindStorage, "remote storage failed")
	}
	return deleted, err
}

func (g *Gateway) ClearAll(ctx context.Context) (int, error) {
	store, backend := g.store()
	count, err := store.ClearAll(ctx)
	if err != nil && backend == BackendRemote {
		g.fallBack(err)
		return 0, apperrors.Wrap(err, apperrors.KindStorage, "remote storage failed")
	}
	return count, err
}

func (g *Gateway) Search(ctx context.Context, query string) ([]model.TranscriptionRecord, error) {
	store, backend := g.store()
	records, err := store.Search(ctx, query)
	if err != nil && backend == BackendRemote {
		g.fallBack(err)
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "remote storage failed")
	}
	return records, err
}

func (g *Gateway) Close() error {
	store, _ := g.store()
	return store.Close()
}

var _ TranscriptionStore = (*Gateway)(nil)
