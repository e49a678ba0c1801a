// ABOUTME: Read-only web dashboard over the hub with embedded templates
// ABOUTME: Serves pipeline, client and calendar pages plus a small JSON surface on a chi router
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/harperreed/lifehub/calendar"
	"github.com/harperreed/lifehub/crm"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/viz"
	"go.uber.org/zap"
)

//go:embed templates/*
var templatesFS embed.FS

// MonthLayout is the format of the calendar ?month= parameter.
const MonthLayout = "2006-01"

type Server struct {
	hub       *hub.Hub
	templates *template.Template
	logger    *zap.Logger
}

func NewServer(h *hub.Hub, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"premium": func(p *float64) string {
			if p == nil {
				return ""
			}
			return fmt.Sprintf("$%.2f", *p)
		},
		"lower": strings.ToLower,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{hub: h, templates: tmpl, logger: logger}, nil
}

// Routes builds the router. Every page except /health and /unlock sits behind
// the passcode gate.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/unlock", s.handleUnlockForm)
	r.Post("/unlock", s.handleUnlock)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUnlocked)
		r.Get("/", s.handleDashboard)
		r.Get("/clients", s.handleClients)
		r.Get("/calendar", s.handleCalendar)
		r.Get("/graph.dot", s.handleGraph)
		r.Route("/api", func(r chi.Router) {
			r.Get("/clients", s.handleClientsJSON)
			r.Get("/posts", s.handlePostsJSON)
		})
	})

	return r
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context, addr string, readTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", zap.String("addr", "http://"+addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) requireUnlocked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.hub.Unlocked() {
			http.Redirect(w, r, "/unlock", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template error", zap.String("template", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"unlocked": s.hub.Unlocked(),
	})
}

func (s *Server) handleUnlockForm(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "layout.html", map[string]interface{}{
		"Title":           "Unlock",
		"ContentTemplate": "unlock-content",
	})
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.hub.Unlock(r.PostForm.Get("passcode")); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		s.renderTemplate(w, "layout.html", map[string]interface{}{
			"Title":           "Unlock",
			"ContentTemplate": "unlock-content",
			"Error":           "Incorrect passcode",
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats := viz.GenerateDashboardStats(s.hub)

	s.renderTemplate(w, "layout.html", map[string]interface{}{
		"Stats":           stats,
		"Columns":         crm.Board(s.hub.Clients()),
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
	})
}

func (s *Server) filteredClients(r *http.Request) ([]models.Client, string, error) {
	clients := s.hub.SearchClients(r.URL.Query().Get("q"))
	raw := strings.TrimSpace(r.URL.Query().Get("stage"))
	if raw == "" {
		return clients, "", nil
	}
	stage, ok := models.ParseStage(raw)
	if !ok {
		return nil, "", fmt.Errorf("unknown stage %q", raw)
	}
	return crm.FilterByStage(clients, stage), string(stage), nil
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	clients, stage, err := s.filteredClients(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.renderTemplate(w, "layout.html", map[string]interface{}{
		"Clients":         clients,
		"Stages":          models.Stages(),
		"Stage":           stage,
		"Query":           r.URL.Query().Get("q"),
		"Title":           "Clients",
		"ContentTemplate": "clients-content",
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ref := s.hub.Now()
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := time.ParseInLocation(MonthLayout, m, time.Local)
		if err != nil {
			http.Error(w, fmt.Sprintf("month must look like %s", MonthLayout), http.StatusBadRequest)
			return
		}
		ref = parsed
	}
	grid := s.hub.MonthGrid(ref)

	s.renderTemplate(w, "layout.html", map[string]interface{}{
		"Grid":            grid,
		"Weeks":           grid.Weeks(),
		"Prev":            calendar.PrevMonth(ref).Format(MonthLayout),
		"Next":            calendar.NextMonth(ref).Format(MonthLayout),
		"Title":           "Calendar",
		"ContentTemplate": "calendar-content",
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	dot, err := viz.GeneratePipelineGraph(s.hub.Clients())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(dot))
}

func (s *Server) handleClientsJSON(w http.ResponseWriter, r *http.Request) {
	clients, _, err := s.filteredClients(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	s.writeJSON(w, http.StatusOK, clients)
}

func (s *Server) handlePostsJSON(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.hub.SortedPosts())
}
