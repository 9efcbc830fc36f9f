package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/eggs/internal/config"
	"github.com/tomz197/eggs/internal/persist"
	"go.uber.org/zap"
)

const leaderboardSize = 10

//go:embed index.html
var htmlPage string

var pageTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(htmlPage))

// pageData is what index.html renders.
type pageData struct {
	SSHHost string
	SSHPort string
	Entries []persist.Entry
	Failed  bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := persist.Open(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	mux := http.NewServeMux()
	mux.Handle("/", indexHandler(backend, cfg.SSH, log))

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting web server", zap.String("addr", "http://"+addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// indexHandler renders the landing page with the connect hint and the
// current leaderboard. A storage failure still renders the page.
func indexHandler(backend persist.Backend, sshCfg config.SSHConfig, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		data := pageData{SSHHost: sshCfg.DisplayHost, SSHPort: sshCfg.Port}
		entries, err := backend.Leaderboard(r.Context(), leaderboardSize)
		if err != nil {
			log.Warn("load leaderboard", zap.Error(err))
			data.Failed = true
		}
		data.Entries = entries

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, data); err != nil {
			log.Warn("render page", zap.Error(err))
		}
	})
}
