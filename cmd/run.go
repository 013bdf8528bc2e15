package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"fretebot/application/portal"
	"fretebot/domain/entities"
	"fretebot/domain/interfaces"
	"fretebot/infrastructure/diagnostics"
	"fretebot/infrastructure/observability"
)

// runtime wires the session store, session manager and robot for one
// command invocation.
type runtime struct {
	logger     *zap.Logger
	cfg        entities.PortalConfig
	store      interfaces.SessionStore
	closeStore func() error
	manager    *portal.Manager
	robot      *portal.Robot
}

func newRuntime() (*runtime, error) {
	logger := observability.L()

	store, closeStore, err := openSessionStore(appCfg.Session)
	if err != nil {
		return nil, err
	}

	rec := diagnostics.NewRecorder(appCfg.ArtifactsDir, logger)
	logger.Debug("run started", zap.String("run_id", rec.RunID()))

	return &runtime{
		logger:     logger,
		cfg:        appCfg.Portal.toEntity(),
		store:      store,
		closeStore: closeStore,
		manager:    portal.NewManager(logger),
		robot:      portal.NewRobot(logger, rec, portal.StatusFilter(appCfg.Scrape.Situacoes)),
	}, nil
}

func (rt *runtime) close() {
	if err := rt.closeStore(); err != nil {
		rt.logger.Warn("closing session store failed", zap.Error(err))
	}
}

// acquire opens an authenticated portal session, persisting any freshly
// captured session state right away so a crash later in the run does
// not lose the login.
func (rt *runtime) acquire(ctx context.Context) (*portal.Session, error) {
	prior, err := rt.store.Load(ctx, rt.cfg.Username)
	if err != nil {
		rt.logger.Warn("could not load saved session, logging in fresh", zap.Error(err))
	}

	sess, err := rt.manager.Acquire(ctx, rt.cfg, prior)
	if err != nil {
		return nil, err
	}

	rt.persistState(ctx, sess.FreshState())
	return sess, nil
}

func (rt *runtime) persistState(ctx context.Context, state entities.SessionState) {
	if state.Empty() {
		return
	}
	if err := rt.store.Save(ctx, rt.cfg.Username, state); err != nil {
		rt.logger.Warn("could not persist session state", zap.Error(err))
	} else {
		rt.logger.Info("session state saved", zap.String("account", rt.cfg.Username))
	}
}

// signalContext returns a context cancelled by Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
