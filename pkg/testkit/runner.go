package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TokenFunc returns a bearer token for role.
type TokenFunc func(t *testing.T, role string) string

// Runner fires scenarios at Handler.
type Runner struct {
	Handler http.Handler
	Token   TokenFunc
}

// Run executes one scenario file as a subtest.
func (r Runner) Run(t *testing.T, path string) {
	t.Helper()
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Run(s.Name, func(t *testing.T) { r.exec(t, s) })
}

// RunDir executes every scenario in dir in order. Scenarios share the
// handler's state, so later files may depend on what earlier ones created.
func (r Runner) RunDir(t *testing.T, dir string) {
	t.Helper()
	scenarios, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) { r.exec(t, s) })
	}
}

// RunDir is Runner{Handler: h}.RunDir for anonymous-only scenario sets.
func RunDir(t *testing.T, h http.Handler, dir string) {
	t.Helper()
	Runner{Handler: h}.RunDir(t, dir)
}

func (r Runner) exec(t *testing.T, s *Scenario) {
	t.Helper()

	payload, err := s.RequestBody()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, body)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.As != "" {
		if r.Token == nil {
			t.Fatalf("[%s] scenario needs role %q but the runner has no TokenFunc", s.Name, s.As)
		}
		req.Header.Set("Authorization", "Bearer "+r.Token(t, s.As))
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	r.Handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code, rec.Body.Bytes())

	expected, err := s.ExpectedBody()
	if err != nil {
		t.Fatalf("[%s] read expected response: %v", s.Name, err)
	}
	if expected == nil {
		return
	}
	if s.Exact {
		AssertJSONBody(t, s, expected, rec.Body.Bytes())
		return
	}
	AssertJSONSubset(t, s, expected, rec.Body.Bytes())
}
