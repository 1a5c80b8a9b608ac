package router

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type HandlerFunc func(http.ResponseWriter, *http.Request)

type ctxKey int

const (
	wildcardKey ctxKey = iota
	requestIDKey
)

type Router struct {
	mux       *http.ServeMux
	routes    map[string]HandlerFunc // key = METHOD:PATH
	paths     map[string]bool        // track registered paths
	wildcards []string               // wildcard patterns, most specific first
}

func New() *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		routes: make(map[string]HandlerFunc),
		paths:  make(map[string]bool),
	}
	r.mux.HandleFunc("/", r.dispatch)
	return r
}

func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	reqID := req.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	lrw.Header().Set(RequestIDHeader, reqID)
	req = req.WithContext(context.WithValue(req.Context(), requestIDKey, reqID))

	if h, ok := r.routes[req.Method+":"+req.URL.Path]; ok {
		h(lrw, req)
	} else {
		r.dispatchWildcard(lrw, req)
	}

	log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s %s",
		colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
		methodColor(req.Method), req.Method, colorReset,
		req.URL.Path,
		statusColor(lrw.statusCode), lrw.statusCode, colorReset,
		colorBlue, time.Since(start), colorReset,
		reqID,
	)
}

func (r *Router) dispatchWildcard(w http.ResponseWriter, req *http.Request) {
	pathMatched := r.paths[req.URL.Path]

	for _, pattern := range r.wildcards {
		rest, ok := matchWildcardRoute(req.URL.Path, pattern)
		if !ok {
			continue
		}
		pathMatched = true
		if h, ok := r.routes[req.Method+":"+pattern]; ok {
			h(w, req.WithContext(context.WithValue(req.Context(), wildcardKey, rest)))
			return
		}
	}

	if pathMatched {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	http.Error(w, "Not Found", http.StatusNotFound)
}

// matchWildcardRoute checks if a request path matches a wildcard route
// pattern. A trailing "*" matches the remaining segments, which are returned
// joined by "/"; an inner "*" matches exactly one segment.
func matchWildcardRoute(requestPath, routePattern string) (string, bool) {
	requestSegments := strings.Split(strings.Trim(requestPath, "/"), "/")
	routeSegments := strings.Split(strings.Trim(routePattern, "/"), "/")

	last := len(routeSegments) - 1
	if routeSegments[last] == "*" {
		if len(requestSegments) <= last {
			return "", false
		}
		for i := 0; i < last; i++ {
			if routeSegments[i] != "*" && requestSegments[i] != routeSegments[i] {
				return "", false
			}
		}
		rest := strings.Join(requestSegments[last:], "/")
		return rest, rest != ""
	}

	if len(requestSegments) != len(routeSegments) {
		return "", false
	}
	for i, routeSegment := range routeSegments {
		if routeSegment != "*" && requestSegments[i] != routeSegment {
			return "", false
		}
	}
	return "", true
}

// Wildcard returns the path the trailing "*" of the matched route captured.
func Wildcard(req *http.Request) string {
	v, _ := req.Context().Value(wildcardKey).(string)
	return v
}

// RequestID returns the id assigned to the request.
func RequestID(req *http.Request) string {
	v, _ := req.Context().Value(requestIDKey).(string)
	return v
}

// --- Register paths ---
func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes[method+":"+path] = handler
	if r.paths[path] {
		return
	}
	r.paths[path] = true

	if strings.Contains(path, "*") {
		r.wildcards = append(r.wildcards, path)
		// longer literal prefixes win
		sort.SliceStable(r.wildcards, func(i, j int) bool {
			return len(r.wildcards[i]) > len(r.wildcards[j])
		})
	}
}

func (r *Router) GET(path string, handler HandlerFunc)   { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc)  { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)   { r.register(http.MethodPut, path, handler) }
func (r *Router) PATCH(path string, handler HandlerFunc) { r.register(http.MethodPatch, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Getter methods for testing
func (r *Router) Routes() map[string]HandlerFunc {
	return r.routes
}

func (r *Router) Paths() map[string]bool {
	return r.paths
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// --- Start server ---

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (r *Router) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("🛑 Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// --- Color helpers ---
func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut, http.MethodPatch:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
