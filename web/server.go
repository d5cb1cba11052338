// Package web serves the recovery endpoints: a plain-text health check and
// a download of the raffle database file. Both are read-only and sit
// outside the ledger core.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Server struct {
	Addr   string
	DBPath string
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.health)
	mux.HandleFunc("GET /download-db", s.downloadDB)
	return mux
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "raffle bot is running\ndb=%s\nTry /download-db to fetch the database\n", s.DBPath)
}

func (s *Server) downloadDB(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", "attachment; filename=raffle.db")
	http.ServeFile(w, r, s.DBPath)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
