package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobtracker-engine/internal/httpapi"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root, logStderr)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = fmt.Sprintf("127.0.0.1:%d", a.cfg.App.Port)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default 127.0.0.1:<app.port>)")
	return cmd
}

func serve(ctx context.Context, a *app, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := httpapi.NewMux(a.deps())
	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}
	httpLog := a.log.Named("http")
	srv.Handler = httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.AccessLog(httpLog),
		httpapi.Recover(httpLog),
	)

	token, err := shutdownToken(a.cfg.Path(shutdownTokenFile))
	if err != nil {
		a.log.Warn("shutdown endpoint disabled", zap.Error(err))
	} else {
		mux.HandleFunc("/shutdown", shutdownHandler(token, srv))
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.log.Info("engine listening", zap.String("addr", "http://"+ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.log.Info("engine stopped")
	return nil
}
