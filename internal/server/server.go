package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// DefaultPort is used when neither the config nor PORT names one.
const DefaultPort = "10000"

const indexFile = "index.html"

// Options configures the static server.
type Options struct {
	Addr   string // host:port, ":10000" when empty
	Dir    string // asset directory, must contain index.html
	Logger *zap.Logger
}

// NewHTTPServer returns an http.Server serving opts.Dir.
func NewHTTPServer(opts Options) (*http.Server, error) {
	handler, err := NewHandler(opts.Dir, opts.Logger)
	if err != nil {
		return nil, err
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":" + DefaultPort
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// NewHandler returns the router for dir: real files are served as is, any
// other GET falls back to index.html so client-side routes load the app.
func NewHandler(dir string, logger *zap.Logger) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve assets dir: %w", err)
	}
	info, err := os.Stat(filepath.Join(abs, indexFile))
	if err != nil {
		return nil, fmt.Errorf("assets dir %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("assets dir %s: %s is a directory", abs, indexFile)
	}

	s := &httpServer{dir: abs, log: logger}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix("/").HandlerFunc(s.serveAsset).Methods(http.MethodGet, http.MethodHead)
	r.MethodNotAllowedHandler = s.logRequests(http.HandlerFunc(methodNotAllowed))
	return r, nil
}

type httpServer struct {
	dir string
	log *zap.Logger
}

func (s *httpServer) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// serveAsset serves the file under dir that matches the request path, or
// index.html when there is none.
func (s *httpServer) serveAsset(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(s.dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))

	info, err := os.Stat(name)
	switch {
	case err == nil && !info.IsDir():
		http.ServeFile(w, r, name)
		return
	case err == nil && info.IsDir():
		if idx, ierr := os.Stat(filepath.Join(name, indexFile)); ierr == nil && !idx.IsDir() {
			serveFileContent(w, r, filepath.Join(name, indexFile))
			return
		}
	case !errors.Is(err, os.ErrNotExist):
		s.log.Warn("stat asset failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	serveFileContent(w, r, filepath.Join(s.dir, indexFile))
}

// serveFileContent writes name without http.ServeFile's redirect of paths
// ending in /index.html.
func serveFileContent(w http.ResponseWriter, r *http.Request, name string) {
	f, err := os.Open(name)
	if err != nil {
		http.Error(w, "asset unavailable", http.StatusInternalServerError)
		return
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, "asset unavailable", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *httpServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
