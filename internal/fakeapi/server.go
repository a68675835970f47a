// Package fakeapi serves canned Premiumize API responses for tests.
package fakeapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/gin-gonic/gin"
)

const invalidKeyBody = `{"status":"error","message":"Invalid API key"}`

// Call is a request received by the fake server.
type Call struct {
	Method  string
	Path    string
	Query   url.Values
	BodyLen int
}

type reply struct {
	status int
	body   string
}

// Server is an httptest server routing /api/* through gin.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	replies map[string]reply
	calls   []Call
	apiKey  string
}

// New starts a fake server. Close it when done.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{replies: make(map[string]reply)}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Any("/api/*endpoint", s.serve)

	s.Server = httptest.NewServer(router)
	return s
}

// BaseURL is the value to pass to premiumize.WithBaseURL.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// RequireAPIKey makes every request with a different apikey get the
// service's invalid key reply.
func (s *Server) RequireAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
}

// Reply registers the response for method and endpoint path, e.g. "/account/info".
func (s *Server) Reply(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[method+" "+path] = reply{status: status, body: body}
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// LastCall returns the most recent request, or false if none arrived.
func (s *Server) LastCall() (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return Call{}, false
	}
	return s.calls[len(s.calls)-1], true
}

func (s *Server) serve(c *gin.Context) {
	endpoint := c.Param("endpoint")
	n, _ := io.Copy(io.Discard, c.Request.Body)

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method:  c.Request.Method,
		Path:    endpoint,
		Query:   c.Request.URL.Query(),
		BodyLen: int(n),
	})
	requiredKey := s.apiKey
	r, ok := s.replies[c.Request.Method+" "+endpoint]
	s.mu.Unlock()

	if requiredKey != "" && c.Query("apikey") != requiredKey {
		c.Data(http.StatusOK, "application/json", []byte(invalidKeyBody))
		return
	}
	if !ok {
		c.Data(http.StatusNotFound, "text/plain", []byte("404 page not found"))
		return
	}
	c.Data(r.status, "application/json", []byte(r.body))
}
