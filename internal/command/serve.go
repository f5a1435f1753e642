package command

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/sssecrets/go-sssecrets"
)

const shutdownTimeout = 5 * time.Second

// ServeCommand runs an HTTP server whose root endpoint requires a valid secret.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve an endpoint protected by secret checking, plus Prometheus metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address (default from config serve.addr)",
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := GetRuntime(c)
			if err != nil {
				return err
			}

			addr := rt.Config.Serve.Addr
			if c.IsSet("addr") {
				addr = c.String("addr")
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector())

			handler, err := NewServeHandler(rt, registry)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, rt, &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			})
		},
	}
}

// NewServeHandler builds the mux used by the serve command.
func NewServeHandler(rt *Runtime, registry *prometheus.Registry) (http.Handler, error) {
	metricsPath := rt.Config.Serve.MetricsPath

	middleware, err := sssecrets.New(
		sssecrets.WithEngine(rt.Engine),
		sssecrets.WithLogger(sssecrets.NewLogrusLogger(rt.Log)),
		sssecrets.WithMetrics(sssecrets.NewPrometheusMetrics(registry)),
		sssecrets.WithTokenExtractor(sssecrets.MultiTokenExtractor(
			sssecrets.AuthHeaderTokenExtractor,
			sssecrets.HeaderTokenExtractor("X-API-Key"),
		)),
	)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/", middleware.CheckSecret(http.HandlerFunc(whoami)))
	return mux, nil
}

func whoami(w http.ResponseWriter, r *http.Request) {
	secret, err := sssecrets.GetSecret(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"kind":   secret.Kind.String(),
		"prefix": secret.Prefix,
		"secret": secret.String(),
	})
}

func serve(ctx context.Context, rt *Runtime, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		rt.Log.WithField("addr", server.Addr).Info("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	rt.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
