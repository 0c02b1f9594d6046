package testkit_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/digiteria/pkg/testkit"
)

// statsHandler is the tiny handler the self-tests run scenarios against.
var statsHandler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path != "/api/stats" {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"active_users":3,"products_sold":2}`))
})

// writeFixture drops content into dir under name and returns the full path.
func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunAgainstHandler(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "stats_ok.res.json", `{"active_users":3,"products_sold":2}`)
	path := writeFixture(t, dir, "stats_ok.json", `{
		"name": "stats endpoint returns aggregates",
		"requestMethod": "GET",
		"requestUrl": "/api/stats",
		"expectedCode": 200,
		"responseFileName": "stats_ok.res.json"
	}`)

	testkit.Run(t, statsHandler, path)
}

func TestLoadScenarioWithMockSteps(t *testing.T) {
	dir := t.TempDir()
	body := base64.StdEncoding.EncodeToString([]byte(`{"charged":true}`))
	path := writeFixture(t, dir, "checkout.json", `{
		"name": "checkout charges through the payment gateway",
		"requestMethod": "POST",
		"requestUrl": "/api/orders",
		"expectedCode": 201,
		"isMockRequired": true,
		"netUtilMockStep": [
			{"method": "httprequest", "isMock": true,
			 "matchUrl": "https://pay.sandbox.test/v1/charge",
			 "returnData": {"statusCode": 200, "body": "`+body+`"}},
			{"method": "sendmail", "isMock": true}
		]
	}`)

	s, err := testkit.LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "checkout charges through the payment gateway", s.Name)
	assert.Equal(t, "POST", s.RequestMethod)
	assert.Equal(t, 201, s.ExpectedCode)
	assert.True(t, s.IsMockRequired)
	require.Len(t, s.NetUtilMockStep, 2)

	httpStep := s.NetUtilMockStep[0]
	assert.Equal(t, "httprequest", httpStep.Method)
	assert.Equal(t, "https://pay.sandbox.test/v1/charge", httpStep.MatchURL)
	assert.NotEmpty(t, httpStep.ReturnData.Body)

	assert.Equal(t, "sendmail", s.NetUtilMockStep[1].Method)
}

func TestLoadScenarioRejectsIncomplete(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "bad.json", `{"name": "no url or code"}`)

	_, err := testkit.LoadScenario(path)
	assert.Error(t, err)
}

func TestMockTransportMatchesAndDecodes(t *testing.T) {
	s := &testkit.Scenario{
		Name:           "payment gateway mock",
		IsMockRequired: true,
		ExpectedCode:   200,
		RequestURL:     "/anything",
		RequestMethod:  "GET",
		NetUtilMockStep: []testkit.MockStep{
			{
				Method:   "httprequest",
				IsMock:   true,
				MatchURL: "https://pay.sandbox.test/",
				ReturnData: testkit.MockReturnData{
					StatusCode: 200,
					Body:       base64.StdEncoding.EncodeToString([]byte(`{"ok":true}`)),
				},
			},
		},
	}

	mt := testkit.NewMockTransport(s)

	req := httptest.NewRequest(http.MethodPost, "https://pay.sandbox.test/v1/charge", nil)
	resp, err := mt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Empty(t, mt.AssertAllCalled())
}

func TestMockTransportRejectsUnmatchedWhenRequired(t *testing.T) {
	s := &testkit.Scenario{
		Name:           "unmatched outgoing call",
		IsMockRequired: true,
		ExpectedCode:   200,
		RequestURL:     "/anything",
		RequestMethod:  "GET",
		NetUtilMockStep: []testkit.MockStep{
			{
				Method:     "httprequest",
				IsMock:     true,
				MatchURL:   "https://pay.sandbox.test/",
				ReturnData: testkit.MockReturnData{StatusCode: 200},
			},
		},
	}

	mt := testkit.NewMockTransport(s)

	req := httptest.NewRequest(http.MethodGet, "https://somewhere-else.test/api", nil)
	_, err := mt.RoundTrip(req)
	assert.Error(t, err)
}

func TestCustomMockerExpectations(t *testing.T) {
	mailer := testkit.NewFuncMocker("sendmail")
	mailer.Mock().On("Intercept", mock.AnythingOfType("[]uint8")).Return(nil)
	testkit.RegisterMocker("sendmail", mailer)

	s := &testkit.Scenario{
		Name:         "order confirmation mail",
		RequestURL:   "/api/orders",
		ExpectedCode: 201,
		NetUtilMockStep: []testkit.MockStep{
			{Method: "sendmail", IsMock: true},
		},
	}

	require.NoError(t, testkit.ActivateFuncMocks(s))
	assert.Equal(t, 1, mailer.WasCalled())
	assert.Empty(t, testkit.AssertFuncMocksCalled(s))
}

func TestAssertJSONBodyIgnoresKeyOrder(t *testing.T) {
	s := &testkit.Scenario{Name: "json compare", ExpectedCode: 200}

	expected := []byte(`{"title":"Minimal Icon Pack","price":24.5}`)
	actual := []byte(`{"price": 24.5, "title": "Minimal Icon Pack"}`)
	testkit.AssertJSONBody(t, s, expected, actual)
}
