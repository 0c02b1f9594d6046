package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockTransport is an http.RoundTripper that answers outgoing requests from
// the scenario's "httprequest" steps instead of the network. The runner
// installs it on the shared HTTP client for the duration of a scenario, so
// payment calls and webhooks resolve against canned responses.
type MockTransport struct {
	mu      sync.Mutex
	steps   []httpMockEntry
	require bool // unmatched outgoing calls fail the scenario
}

type httpMockEntry struct {
	step      MockStep
	callCount int
}

// NewMockTransport collects the "httprequest" steps from s. Function-level
// steps (sendmail and friends) are handled by the mocker registry instead.
func NewMockTransport(s *Scenario) *MockTransport {
	mt := &MockTransport{require: s.IsMockRequired}
	for _, step := range s.NetUtilMockStep {
		if step.Method == "httprequest" {
			mt.steps = append(mt.steps, httpMockEntry{step: step})
		}
	}
	return mt
}

// RoundTrip matches the request URL against the mock steps and synthesises
// the configured response for the first hit.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for i := range mt.steps {
		entry := &mt.steps[i]
		if !entry.step.IsMock {
			// A non-mock step documents a real dependency; stop matching
			// so the call falls through below.
			break
		}
		if !matchesURL(req.URL.String(), entry.step.MatchURL) {
			continue
		}
		entry.callCount++
		return synthesize(req, entry.step.ReturnData)
	}

	if mt.require {
		return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call to %s — no matching mock step", req.URL)
	}

	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader(`{"error":"no mock configured"}`)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// AssertAllCalled returns one error per isMock=true step that never matched
// an outgoing request.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, e := range mt.steps {
		if e.step.IsMock && e.callCount == 0 {
			errs = append(errs, fmt.Errorf(
				"testkit: mock step %q (matchUrl=%q) was never called",
				e.step.Method, e.step.MatchURL,
			))
		}
	}
	return errs
}

// matchesURL prefix-matches candidate against pattern; empty pattern matches
// everything.
func matchesURL(candidate, pattern string) bool {
	return pattern == "" || strings.HasPrefix(candidate, pattern)
}

// synthesize builds the canned *http.Response for a matched step.
func synthesize(req *http.Request, rd MockReturnData) (*http.Response, error) {
	code := rd.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	body, err := rd.decodeBody()
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}
