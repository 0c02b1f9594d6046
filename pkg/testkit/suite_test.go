package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

// TestRunSuite wires a minimal contact-style endpoint through a master
// config written to a temp dir and checks the suite runner drives it end to
// end: config → scenario array → request fixture → response assertion.
func TestRunSuite(t *testing.T) {
	master := []ConfigEntry{
		{
			ServiceName:       "ContactEcho",
			FilePath:          "contact_api",
			ScenariosFileName: "contact_scenarios.json",
			ServiceURL:        "/api/contact",
			HTTPMethodType:    "POST",
			WorkflowService:   "HandleContact",
		},
	}

	scenarios := []Scenario{
		{
			Name:             "contact message accepted",
			Description:      "Echoes the submitted message back",
			RequestMethod:    "POST",
			RequestURL:       "/api/contact",
			ExpectedCode:     200,
			RequestFileName:  "req.json",
			ResponseFileName: "res.json",
		},
	}

	dir := t.TempDir()
	masterPath := filepath.Join(dir, "suite.json")
	writeJSONFile(t, masterPath, master)

	apiDir := filepath.Join(dir, "contact_api")
	if err := os.MkdirAll(apiDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeJSONFile(t, filepath.Join(apiDir, "contact_scenarios.json"), scenarios)

	body := []byte(`{"message": "love the icon pack"}`)
	if err := os.WriteFile(filepath.Join(apiDir, "req.json"), body, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(apiDir, "res.json"), body, 0o644); err != nil {
		t.Fatal(err)
	}

	handlers := map[string]http.HandlerFunc{
		"HandleContact": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"message": "love the icon pack"}`))
		},
	}

	// Failures inside RunSuite surface through t directly.
	RunSuite(t, masterPath, handlers)
}

func writeJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}
