package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shashiranjanraj/digiteria/pkg/router"
)

// ConfigEntry maps one API surface in the master suite file to the handler
// under test and the scenario array that exercises it.
type ConfigEntry struct {
	ServiceName          string `json:"serviceName"`
	FilePath             string `json:"filePath"`
	ScenariosFileName    string `json:"scenariosFileName"`
	ServiceURL           string `json:"serviceUrl"`
	HTTPMethodType       string `json:"httpMethodType"`
	WorkflowService      string `json:"workflowService"` // key into the handlers map
	IsGetService         bool   `json:"isGetService,omitempty"`
	IsNetUtilsUsed       bool   `json:"isNetUtilsUsed,omitempty"`
	IsFirestoreUtilsUsed bool   `json:"isFireStoreUtilsUsed,omitempty"`
}

// RunSuite executes every scenario referenced by the master config file.
// Each entry gets a fresh router with just its handler mounted, so suites
// stay isolated from the application's full route table.
func RunSuite(t *testing.T, masterConfigPath string, handlers map[string]http.HandlerFunc) {
	t.Helper()

	absMasterPath, err := filepath.Abs(masterConfigPath)
	if err != nil {
		t.Fatalf("testkit: resolve master config path %q: %v", masterConfigPath, err)
	}

	data, err := os.ReadFile(absMasterPath)
	if err != nil {
		t.Fatalf("testkit: read master config %q: %v", absMasterPath, err)
	}

	var entries []ConfigEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("testkit: parse master config %q: %v", absMasterPath, err)
	}

	baseDir := filepath.Dir(absMasterPath)

	for _, entry := range entries {
		t.Run(entry.ServiceName, func(t *testing.T) {
			handlerFunc, ok := handlers[entry.WorkflowService]
			if !ok {
				t.Fatalf("testkit: handler %q not found in provided map", entry.WorkflowService)
			}

			url := entry.ServiceURL
			if url != "" && url[0] != '/' {
				url = "/" + url
			}

			r := router.New()
			switch strings.ToUpper(entry.HTTPMethodType) {
			case "POST":
				r.Post(url, entry.WorkflowService, handlerFunc)
			case "PUT":
				r.Put(url, entry.WorkflowService, handlerFunc)
			case "PATCH":
				r.Patch(url, entry.WorkflowService, handlerFunc)
			case "DELETE":
				r.Delete(url, entry.WorkflowService, handlerFunc)
			default:
				r.Get(url, entry.WorkflowService, handlerFunc)
			}

			// FilePath resolves against the master config first, then
			// against the working directory.
			scenarioPath := filepath.Join(baseDir, entry.FilePath, entry.ScenariosFileName)
			if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
				scenarioPath = filepath.Join(entry.FilePath, entry.ScenariosFileName)
			}

			scenarios, err := LoadScenarioArray(scenarioPath)
			if err != nil {
				t.Fatalf("testkit: load scenario array %q: %v", scenarioPath, err)
			}

			for _, s := range scenarios {
				// Scenario arrays may omit routing; fill it from the entry.
				if s.RequestURL == "" {
					s.RequestURL = url
				}
				if s.RequestMethod == "" {
					s.RequestMethod = entry.HTTPMethodType
				}

				t.Run(s.Name, func(t *testing.T) {
					runScenario(t, r.Handler(), s)
				})
			}
		})
	}
}
