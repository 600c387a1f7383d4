package rest

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/usecase"
)

const (
	sessionCookieName = "user_session"
	unmatchedRoute    = "unmatched"
	sessionCookieAge  = 24 * time.Hour
	shutdownTimeout   = 5 * time.Second
)

type gameUseCase interface {
	GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error)
	Play(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*entity.Session, error)
	ToggleOrder(ctx context.Context, sessionID string) (*entity.Session, error)
	Restart(ctx context.Context, sessionID string) (*entity.Session, error)
}

type productUseCase interface {
	Table(ctx context.Context, sessionID string) (*usecase.ProductTable, error)
	SetFilter(ctx context.Context, sessionID string, filter entity.ProductFilter) (*usecase.ProductTable, error)
	Query(filter entity.ProductFilter) *usecase.ProductTable
}

type requestMetrics interface {
	HTTPRequest(path string, code int)
	Handler() http.Handler
}

type Server struct {
	logger    *slog.Logger
	games     gameUseCase
	products  productUseCase
	metrics   requestMetrics
	templates *template.Template
}

func New(logger *slog.Logger, games gameUseCase, products productUseCase, metrics requestMetrics) *Server {
	return &Server{
		logger:    logger.With("component", "http"),
		games:     games,
		products:  products,
		metrics:   metrics,
		templates: parseTemplates(),
	}
}

// Handler - builds the router with request logging.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.pingHandler)
	mux.Handle("GET /metrics", that.metrics.Handler())

	mux.HandleFunc("GET /{$}", that.handleIndex)
	mux.HandleFunc("GET /game", that.handleGamePage)
	mux.HandleFunc("POST /game/play", that.handleGamePlay)
	mux.HandleFunc("POST /game/jump", that.handleGameJump)
	mux.HandleFunc("POST /game/toggle", that.handleGameToggle)
	mux.HandleFunc("POST /game/restart", that.handleGameRestart)
	mux.HandleFunc("GET /products", that.handleProductsPage)

	mux.HandleFunc("GET /api/game", that.handleAPIGame)
	mux.HandleFunc("POST /api/game/play", that.handleAPIPlay)
	mux.HandleFunc("POST /api/game/jump", that.handleAPIJump)
	mux.HandleFunc("POST /api/game/toggle", that.handleAPIToggle)
	mux.HandleFunc("POST /api/game/restart", that.handleAPIRestart)
	mux.HandleFunc("GET /api/products", that.handleAPIProducts)

	return that.requestLogger(mux)
}

// Start - serves until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	}
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		// ServeMux fills r.Pattern; labelling by pattern keeps the series count fixed
		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}

		that.metrics.HTTPRequest(route, sw.status)
		that.logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

// session - loads the visitor's session, issuing a new cookie when the old one is missing or expired.
func (that *Server) session(w http.ResponseWriter, r *http.Request) (*entity.Session, error) {
	var id string
	if cookie, err := r.Cookie(sessionCookieName); err == nil && pkg.IsSessionID(cookie.Value) {
		id = cookie.Value
	}

	session, err := that.games.GetOrCreateSession(r.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    session.ID,
			Path:     "/",
			Expires:  time.Now().Add(sessionCookieAge),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return session, nil
}
