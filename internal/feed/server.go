package feed

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RE4CT-SC/388-Client/internal/diag"
	"github.com/gorilla/websocket"
)

// Server serves the feed websocket and the status snapshot. The feed binds
// to loopback; origin checks keep browser pages from other hosts out.
type Server struct {
	broadcaster *Broadcaster
}

func NewServer(b *Broadcaster) *Server {
	return &Server{broadcaster: b}
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/status", s.handleStatus)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed upgrade error: %v", err)
		return
	}

	c := s.broadcaster.AddClient(conn)
	go func() {
		defer s.broadcaster.RemoveClient(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatusPayload{
		State:   s.broadcaster.ctrl.State().String(),
		Keybind: s.broadcaster.binding.Display(),
		Diag:    diag.Collect(),
	})
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := parsed.Host
	switch {
	case host == r.Host:
		return true
	case host == "localhost" || strings.HasPrefix(host, "localhost:"):
		return true
	case host == "127.0.0.1" || strings.HasPrefix(host, "127.0.0.1:"):
		return true
	case host == "::1" || strings.HasPrefix(host, "[::1]:"):
		return true
	}
	return false
}

// ListenAndServe runs the feed server until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, mux *http.ServeMux) error {
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	log.Printf("status feed listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
