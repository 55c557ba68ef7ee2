// Package keyservicetest provides an in-memory key service served over
// httptest, for exercising the HTTP key service client and everything built
// on it without a real key server.
package keyservicetest

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/internal/utils"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

const (
	EndpointCreateKey = "createkey"
	EndpointGetKey    = "key"
)

type entry struct {
	model  models.KeyModel
	secret string
}

// KeyRequestBody is the union of every request body the service accepts.
type KeyRequestBody struct {
	KeyID      string `json:"keyid"`
	Secret     string `json:"secret"`
	LongSecret string `json:"longsecret"`
}

// Request is one request observed by the Server.
type Request struct {
	Endpoint    string
	RequestID   string
	ContentType string
	Body        KeyRequestBody
}

// Server is a key service double. The zero value is not usable; call
// NewServer.
type Server struct {
	*httptest.Server

	version string
	ids     *utils.UUIDGenerator
	logger  *logger.Logger

	mu       sync.Mutex
	keys     map[string]entry
	failures map[string][]int
	requests []Request
}

// Option configures a Server.
type Option func(*Server)

// WithLogger makes the Server log every request to log.
func WithLogger(log *logger.Logger) Option {
	return func(s *Server) {
		s.logger = log
	}
}

// NewServer starts a key service double answering under
// /keyservice/{version}/. Only POST is routed; other methods get 404.
// Close it when done.
func NewServer(version string, opts ...Option) *Server {
	s := &Server{
		version:  version,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger.Nop(),
		keys:     make(map[string]entry),
		failures: make(map[string][]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.withRequestID, s.withLogging)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	r.Route("/keyservice/{version}", func(r chi.Router) {
		r.Use(s.checkVersion)
		r.Post("/"+EndpointCreateKey, s.createKey)
		r.Post("/"+EndpointGetKey, s.getKey)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// Realm returns the base URL to configure clients with.
func (s *Server) Realm() string {
	return s.URL
}

// AddKey registers a key so it can be fetched with secret or with
// model.LongSecret.
func (s *Server) AddKey(model models.KeyModel, secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[model.KeyID] = entry{model: model, secret: secret}
}

// FailNext makes the next request to endpoint answer with status and an
// empty body. Calls queue up.
func (s *Server) FailNext(endpoint string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[endpoint] = append(s.failures[endpoint], status)
}

// Requests returns a copy of every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) checkVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "version") != s.version {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// record stores the request and pops a queued failure, if any.
func (s *Server) record(endpoint string, r *http.Request, body KeyRequestBody) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, Request{
		Endpoint:    endpoint,
		RequestID:   r.Header.Get(requestIDHeader),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})

	queue := s.failures[endpoint]
	if len(queue) == 0 {
		return 0, false
	}
	s.failures[endpoint] = queue[1:]
	return queue[0], true
}

func (s *Server) createKey(w http.ResponseWriter, r *http.Request) {
	var body KeyRequestBody
	if err := utils.ReadJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if status, ok := s.record(EndpointCreateKey, r, body); ok {
		w.WriteHeader(status)
		return
	}
	if body.Secret == "" {
		http.Error(w, "secret required", http.StatusBadRequest)
		return
	}

	model := models.KeyModel{
		KeyID:      s.ids.Generate(),
		Key:        randomBase64(32),
		LongSecret: randomBase64(24),
	}
	s.AddKey(model, body.Secret)

	_, _ = utils.WriteJSON(w, model, http.StatusOK)
}

func (s *Server) getKey(w http.ResponseWriter, r *http.Request) {
	var body KeyRequestBody
	if err := utils.ReadJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if status, ok := s.record(EndpointGetKey, r, body); ok {
		w.WriteHeader(status)
		return
	}

	s.mu.Lock()
	e, found := s.keys[body.KeyID]
	s.mu.Unlock()

	switch {
	case !found:
		http.Error(w, "key not found", http.StatusNotFound)
	case body.LongSecret != "" && body.LongSecret == e.model.LongSecret:
		_, _ = utils.WriteJSON(w, e.model, http.StatusOK)
	case body.Secret != "" && body.Secret == e.secret:
		_, _ = utils.WriteJSON(w, e.model, http.StatusOK)
	default:
		http.Error(w, "bad secret", http.StatusUnauthorized)
	}
}

func randomBase64(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}
