package mock

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxLogs = 1000

// Server replays canned responses for configured routes
type Server struct {
	config     *Config
	httpServer *http.Server
	listener   net.Listener
	workdir    string

	routerMu sync.RWMutex
	router   http.Handler

	logs      []RequestLog
	logged    int // requests logged since start, including trimmed ones
	logsMutex sync.RWMutex
	notifyCh  chan struct{} // Channel to notify when new log arrives
}

// NewServer creates a new mock server
func NewServer(config *Config, workdir string) *Server {
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Host == "" {
		config.Host = "localhost"
	}

	s := &Server{
		config:   config,
		logs:     make([]RequestLog, 0),
		workdir:  workdir,
		notifyCh: make(chan struct{}, 100),
	}
	s.router = s.buildRouter(config.Routes)
	return s
}

// Handler returns the server's HTTP handler, suitable for httptest.NewServer
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.routerMu.RLock()
		router := s.router
		s.routerMu.RUnlock()
		router.ServeHTTP(w, r)
	})
}

// SetRoutes swaps the route table while the server is running
func (s *Server) SetRoutes(routes []Route) {
	router := s.buildRouter(routes)

	s.routerMu.Lock()
	defer s.routerMu.Unlock()
	s.config.Routes = routes
	s.router = router
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("mock_server_error", slog.Any("err", err))
		}
	}()

	return nil
}

// Stop stops the mock server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// buildRouter registers the first route for each method and pattern.
// Unmatched requests get a 404 that is logged like any other.
func (s *Server) buildRouter(routes []Route) http.Handler {
	r := chi.NewRouter()
	r.Use(s.logMiddleware)

	seen := make(map[string]bool)
	for _, route := range routes {
		key := strings.ToUpper(route.Method) + " " + route.Path
		if seen[key] {
			continue
		}
		seen[key] = true
		r.MethodFunc(strings.ToUpper(route.Method), route.Path, s.routeHandler(route))
	}

	notFound := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "Mock server: No route configured for %s %s", r.Method, r.URL.Path)
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

// routeHandler writes the canned response of a route
func (s *Server) routeHandler(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if route.Delay > 0 {
			select {
			case <-time.After(time.Duration(route.Delay) * time.Millisecond):
			case <-r.Context().Done():
				return
			}
		}

		status := route.Status
		if status == 0 {
			status = http.StatusOK
		}

		responseBody := route.Body
		if route.BodyFile != "" {
			filePath := route.BodyFile
			if !filepath.IsAbs(filePath) {
				filePath = filepath.Join(s.workdir, filePath)
			}
			data, err := os.ReadFile(filePath)
			if err != nil {
				status = http.StatusInternalServerError
				responseBody = fmt.Sprintf("Mock server: Failed to read body file %s: %v", route.BodyFile, err)
			} else {
				responseBody = string(data)
			}
		}

		for key, value := range route.Headers {
			w.Header().Set(key, value)
		}
		if w.Header().Get("Content-Type") == "" && looksLikeJSON(responseBody) {
			w.Header().Set("Content-Type", "application/json")
		}

		rule := route.Name
		if rule == "" {
			rule = fmt.Sprintf("%s %s", route.Method, route.Path)
		}
		w.Header().Set("X-Mock-Rule", rule)

		w.WriteHeader(status)
		w.Write([]byte(responseBody))
	}
}

// logMiddleware records every request, matched or not
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		bodyBytes, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		if !s.config.Logging {
			return
		}

		matched := ww.Header().Get("X-Mock-Rule")
		if matched == "" {
			matched = "none"
		}

		s.logRequest(RequestLog{
			Timestamp:   start,
			Method:      r.Method,
			Path:        r.URL.Path,
			Headers:     flattenHeaders(r.Header),
			Body:        string(bodyBytes),
			MatchedRule: matched,
			Status:      ww.Status(),
			Duration:    time.Since(start),
		})
	})
}

// logRequest adds a request to the log
func (s *Server) logRequest(log RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, log)
	s.logged++

	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}

	// Notify listeners (non-blocking)
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// NotifyChannel returns the notification channel
func (s *Server) NotifyChannel() <-chan struct{} {
	return s.notifyCh
}

// GetLogs returns all logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// LogsSince returns the requests logged after the first seen ones and the
// new total to pass on the next call. Requests already trimmed from the log
// are skipped.
func (s *Server) LogsSince(seen int) ([]RequestLog, int) {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	start := seen - (s.logged - len(s.logs))
	if start < 0 {
		start = 0
	}
	if start > len(s.logs) {
		start = len(s.logs)
	}

	logs := make([]RequestLog, len(s.logs)-start)
	copy(logs, s.logs[start:])
	return logs, s.logged
}

// Count returns how many logged requests hit method and path exactly
func (s *Server) Count(method, path string) int {
	n := 0
	for _, l := range s.GetLogs() {
		if l.Method == method && l.Path == path {
			n++
		}
	}
	return n
}

// ClearLogs clears all logged requests
func (s *Server) ClearLogs() {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = make([]RequestLog, 0)
}

// GetAddress returns the server address
func (s *Server) GetAddress() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}

// flattenHeaders converts http.Header to map[string]string (first value only)
func flattenHeaders(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if len(values) > 0 {
			result[key] = values[0]
		}
	}
	return result
}

func looksLikeJSON(body string) bool {
	trimmed := strings.TrimSpace(body)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}
