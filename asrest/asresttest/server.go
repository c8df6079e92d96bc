// Package asresttest provides a scripted Access Server for tests.
//
// A Server replays a fixed sequence of steps, one per profile request, and
// records every request it sees so tests can assert on the credentials the
// client actually sent. It listens on a local TLS socket with a self-signed
// certificate; use Client() for an HTTP client that trusts it.
package asresttest

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/atomic"

	"github.com/claytonburns/asprofile/asrest"
)

// Step is one scripted response.
type Step struct {
	// Status is the HTTP status code to respond with.
	Status int

	// Body is the raw response body.
	Body string
}

// ProfileStep scripts a successful response carrying the given profile text.
func ProfileStep(profile string) Step {
	return Step{Status: http.StatusOK, Body: profile}
}

// ChallengeStep scripts a 401 carrying a CRV1 challenge with the given
// flags, state ID and prompt.
func ChallengeStep(flags, stateID, prompt string) Step {
	message := fmt.Sprintf("CRV1:%s:%s:dXNlcg==:%s", flags, stateID, prompt)
	return errorStep(http.StatusUnauthorized, asrest.TypeAuthorizationRequired, message)
}

// FatalStep scripts a 401 carrying a non-challenge error document.
func FatalStep(errType, message string) Step {
	return errorStep(http.StatusUnauthorized, errType, message)
}

func errorStep(status int, errType, message string) Step {
	body, err := xml.Marshal(&asrest.ErrorDocument{
		Type:     errType,
		Synopsis: "REST method failed",
		Message:  message,
	})
	if err != nil {
		panic(err)
	}
	return Step{Status: status, Body: xml.Header + string(body)}
}

// Request records one profile request as seen by the server.
type Request struct {
	// Endpoint is the request path, e.g. "/rest/GetUserlogin".
	Endpoint string

	// RawQuery is the query string, e.g. "tls-cryptv2=1".
	RawQuery string

	// Username and Credential are the basic-auth values, verbatim.
	Username   string
	Credential string
}

// Server is a scripted Access Server.
type Server struct {
	ts  *httptest.Server
	log *slog.Logger

	steps        []Step
	cursor       atomic.Int64
	requestCount atomic.Int64

	mu       sync.Mutex
	requests []Request
}

// New starts a scripted server that will answer profile requests with the
// given steps in order. Requests beyond the script get a 500. Callers must
// Close the server when done.
func New(log *slog.Logger, steps ...Step) *Server {
	srv := &Server{
		log:   log,
		steps: steps,
	}

	mux := chi.NewRouter()
	mux.With(srv.httpLogger).Get("/rest/GetUserlogin", srv.handleProfile)
	mux.With(srv.httpLogger).Get("/rest/GetAutologin", srv.handleProfile)

	srv.ts = httptest.NewTLSServer(mux)
	return srv
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.log, next)
}

func (srv *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	username, credential, _ := r.BasicAuth()

	srv.requestCount.Inc()
	srv.mu.Lock()
	srv.requests = append(srv.requests, Request{
		Endpoint:   r.URL.Path,
		RawQuery:   r.URL.RawQuery,
		Username:   username,
		Credential: credential,
	})
	srv.mu.Unlock()

	idx := int(srv.cursor.Inc()) - 1
	if idx >= len(srv.steps) {
		srv.log.Error("Scripted server ran out of steps", "requests", idx+1)
		http.Error(w, "script exhausted", http.StatusInternalServerError)
		return
	}

	step := srv.steps[idx]
	w.WriteHeader(step.Status)
	w.Write([]byte(step.Body))
}

// URL returns the server's base https URL.
func (srv *Server) URL() string {
	return srv.ts.URL
}

// Client returns an HTTP client that trusts the server's certificate.
func (srv *Server) Client() *http.Client {
	return srv.ts.Client()
}

// Requests returns a copy of all requests seen so far, in order.
func (srv *Server) Requests() []Request {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return append([]Request(nil), srv.requests...)
}

// RequestCount returns the number of profile requests seen so far.
func (srv *Server) RequestCount() int {
	return int(srv.requestCount.Load())
}

// Close shuts the server down.
func (srv *Server) Close() {
	srv.ts.Close()
}
