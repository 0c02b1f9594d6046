// Package testkit drives REST API tests from JSON scenario files instead of
// hand-written request code. A scenario names the request to fire, the
// status and body to expect, and the outgoing calls to intercept while the
// request runs.
//
// Scenario files live in testdata/ next to the test:
//
//	testdata/
//	  stats_show.json            ← scenario
//	  requests/checkout.json     ← request body
//	  responses/stats_show.json  ← expected response body
//
//	func TestScenarios(t *testing.T) {
//	    h, _ := newAPI(t)
//	    testkit.RunDir(t, h, "testdata")
//	}
package testkit

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario is one API test case as loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`   // defaults to GET
	RequestURL      string            `json:"requestUrl"`      // e.g. /api/products
	RequestFileName string            `json:"requestFileName"` // JSON body file, relative to the scenario
	Headers         map[string]string `json:"headers"`

	// Assertions
	ResponseFileName   string `json:"responseFileName"` // expected body, deep-compared as JSON
	ExpectedCode       int    `json:"expectedCode"`
	ExpectedStatusCode int    `json:"expectedStatusCode"` // accepted alias for expectedCode

	// Behaviour flags
	IsDbMocked             bool `json:"isDbMocked"`
	IsMockRequired         bool `json:"isMockRequired"` // fail on outgoing calls with no matching mock
	IsConfigChangeRequired bool `json:"isConfigChangeRequired"`

	// Intercepted side-effects, in definition order.
	NetUtilMockStep []MockStep `json:"netUtilMockStep"`

	dir string // directory of the scenario file, set at load time
}

// MockStep describes one intercepted outgoing call.
//
// Method selects the interceptor: "httprequest" matches outgoing HTTP via
// MockTransport; "sendmail", "sms" and "notification" route to the built-in
// function mockers; any other name is looked up in the mocker registry.
type MockStep struct {
	Method string `json:"method"`

	// IsMock — when true the call is intercepted and ReturnData comes back.
	// When false the step only documents a real dependency.
	IsMock bool `json:"isMock"`

	// MatchURL prefix-matches the outgoing request URL for "httprequest"
	// steps. Empty matches everything.
	MatchURL string `json:"matchUrl"`

	ReturnData MockReturnData `json:"returnData"`
}

// MockReturnData is the synthetic result a mock step produces.
type MockReturnData struct {
	// StatusCode for "httprequest" steps. Defaults to 200.
	StatusCode int `json:"statusCode"`

	// Body is base64-encoded: the HTTP response body for "httprequest",
	// raw bytes handed to the mocker otherwise.
	Body string `json:"body"`
}

// decodeBody returns the decoded Body, accepting both padded and raw
// standard base64.
func (rd MockReturnData) decodeBody() ([]byte, error) {
	if rd.Body == "" {
		return nil, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(rd.Body)
	if err == nil {
		return decoded, nil
	}
	decoded, rawErr := base64.RawStdEncoding.DecodeString(rd.Body)
	if rawErr != nil {
		return nil, fmt.Errorf("testkit: base64 decode mock body: %w", err)
	}
	return decoded, nil
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
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

	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 && s.ExpectedStatusCode != 0 {
		s.ExpectedCode = s.ExpectedStatusCode
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return s.validateSteps()
}

func (s *Scenario) validateSteps() error {
	for i, step := range s.NetUtilMockStep {
		if step.Method == "" {
			return fmt.Errorf("netUtilMockStep[%d].method is required", i)
		}
	}
	return nil
}

// RequestBodyPath resolves RequestFileName against the scenario directory.
// Empty when no request body is configured.
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath resolves ResponseFileName against the scenario directory.
// Empty when no expected body is configured.
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// LoadScenarioArray reads a file holding a JSON array of scenarios, as used
// by the suite runner. Request URL and method may be left empty here; the
// suite injects them from its config entry before running.
func LoadScenarioArray(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve scenario array path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read scenario array %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse scenario array %q: %w", abs, err)
	}

	dir := filepath.Dir(abs)
	for _, s := range scenarios {
		s.dir = dir
		if s.ExpectedCode == 0 {
			s.ExpectedCode = s.ExpectedStatusCode
		}
		if s.ExpectedCode == 0 {
			s.ExpectedCode = 200
		}
		if s.Name == "" {
			return nil, fmt.Errorf("testkit: scenario array %q: name is required", abs)
		}
		if err := s.validateSteps(); err != nil {
			return nil, fmt.Errorf("testkit: scenario array item %q: %w", s.Name, err)
		}
	}
	return scenarios, nil
}
