package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

// Run serves on ln until ctx is cancelled, then drains: keep-alives are
// disabled, hooks run within the drain window and the server shuts down
// within the shutdown window. A listener failure is returned immediately.
func Run(
	ctx context.Context,
	server *http.Server,
	ln net.Listener,
	cfg ServerConfig,
	log *logger.Logger,
	serviceName string,
	hooks []ShutdownHook,
) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("%s service listening on %s", serviceName, ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("%s service: %w", serviceName, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("shutting down %s service...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	drainCtx, drainCancel := context.WithTimeout(shutdownCtx, cfg.DrainTimeout)
	defer drainCancel()

	log.Infof("%s service: stopping accepting new connections (drain period: %v)", serviceName, cfg.DrainTimeout)
	server.SetKeepAlivesEnabled(false)

	if len(hooks) > 0 {
		log.Infof("%s service: executing shutdown hooks", serviceName)
		for i, hook := range hooks {
			if err := hook(drainCtx); err != nil {
				log.Errorf("%s service: shutdown hook %d failed: %v", serviceName, i, err)
			}
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%s service forced to shutdown: %v", serviceName, err)
		return err
	}
	log.Infof("%s service stopped gracefully", serviceName)
	return nil
}

// ListenAndRun binds cfg.Addr and calls Run.
func ListenAndRun(ctx context.Context, cfg ServerConfig, handler http.Handler, log *logger.Logger, serviceName string, hooks []ShutdownHook) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	return Run(ctx, NewServer(cfg, handler), ln, cfg, log, serviceName, hooks)
}
