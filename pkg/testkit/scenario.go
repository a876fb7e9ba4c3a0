// Package testkit runs JSON API scenarios against an http.Handler.
//
// A scenario file describes one request and what must come back:
//
//	{
//	  "name": "create category",
//	  "as": "admin",
//	  "requestMethod": "POST",
//	  "requestUrl": "/api/v1/categories",
//	  "body": {"en_category_name": "Electronics", "ar_category_name": "إلكترونيات"},
//	  "expectedCode": 201,
//	  "response": {"data": {"en_category_name": "Electronics"}}
//	}
//
// "response" (or "responseFileName") is matched as a subset by default:
// every key it names must be present with the same value, other keys are
// ignored. Set "exact": true to compare the whole body.
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Scenario is one API test case.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Order sorts scenarios inside a directory; ties fall back to file name.
	Order int `json:"order"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"`
	Body            json.RawMessage   `json:"body"`
	Headers         map[string]string `json:"headers"`

	// As names the role whose bearer token is attached. Empty is anonymous.
	As string `json:"as"`

	ExpectedCode     int             `json:"expectedCode"`
	ResponseFileName string          `json:"responseFileName"`
	Response         json.RawMessage `json:"response"`
	Exact            bool            `json:"exact"`

	dir  string
	file string
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	s.dir, s.file = filepath.Dir(abs), filepath.Base(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if len(s.Body) > 0 && s.RequestFileName != "" {
		return fmt.Errorf("body and requestFileName are exclusive")
	}
	if len(s.Response) > 0 && s.ResponseFileName != "" {
		return fmt.Errorf("response and responseFileName are exclusive")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// RequestBody returns the request payload, or nil when there is none.
func (s *Scenario) RequestBody() ([]byte, error) {
	if len(s.Body) > 0 {
		return s.Body, nil
	}
	if s.RequestFileName == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.RequestFileName))
}

// ExpectedBody returns the expected response, or nil when unchecked.
func (s *Scenario) ExpectedBody() ([]byte, error) {
	if len(s.Response) > 0 {
		return s.Response, nil
	}
	if s.ResponseFileName == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.ResponseFileName))
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// LoadDir loads every *.json scenario in dir, skipping request/response
// payload files (*_req.json, *_res.json), sorted by Order then file name.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var out []*Scenario
	for _, p := range paths {
		if isPayload(p) {
			continue
		}
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("testkit: no scenario files found in %q", dir)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].file < out[j].file
	})
	return out, nil
}

func isPayload(path string) bool {
	m1, _ := filepath.Match("*_req.json", filepath.Base(path))
	m2, _ := filepath.Match("*_res.json", filepath.Base(path))
	return m1 || m2
}
