package testkit

import (
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
)

// FuncMocker intercepts a non-HTTP side-effect (mail, SMS, push) named by a
// scenario step. Implementations wrap a testify mock so tests can layer
// their own On/Return expectations on top.
//
// Registering a custom mocker:
//
//	func init() {
//	    testkit.RegisterMocker("slack", testkit.NewFuncMocker("slack"))
//	}
type FuncMocker interface {
	// Intercept receives the step's decoded ReturnData.Body.
	Intercept(rawBody []byte) error

	// Reset clears call history between scenarios.
	Reset()

	// WasCalled reports how many times Intercept ran since the last Reset.
	WasCalled() int

	// Mock exposes the embedded testify mock for custom expectations.
	Mock() *mock.Mock
}

// GenericFuncMocker is the testify-backed FuncMocker used for the built-in
// step methods. By default it accepts every call and returns nil.
type GenericFuncMocker struct {
	m      mock.Mock
	method string
	mu     sync.Mutex
	calls  int
}

// NewFuncMocker returns a mocker for the named step method, pre-armed to
// return nil on any Intercept.
func NewFuncMocker(method string) *GenericFuncMocker {
	gm := &GenericFuncMocker{method: method}
	gm.m.On("Intercept", mock.AnythingOfType("[]uint8")).Return(nil)
	return gm
}

func (gm *GenericFuncMocker) Intercept(rawBody []byte) error {
	gm.mu.Lock()
	gm.calls++
	gm.mu.Unlock()

	args := gm.m.Called(rawBody)
	if args.Get(0) == nil {
		return nil
	}
	return args.Error(0)
}

func (gm *GenericFuncMocker) Reset() {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.calls = 0
	gm.m.Calls = nil
	gm.m.On("Intercept", mock.AnythingOfType("[]uint8")).Return(nil)
}

func (gm *GenericFuncMocker) WasCalled() int {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.calls
}

func (gm *GenericFuncMocker) Mock() *mock.Mock { return &gm.m }

var (
	mockerMu sync.RWMutex

	// The notification channels the marketplace actually sends on.
	mockerRegistry = map[string]FuncMocker{
		"sendmail":     NewFuncMocker("sendmail"),
		"sms":          NewFuncMocker("sms"),
		"notification": NewFuncMocker("notification"),
	}
)

// RegisterMocker adds or replaces the FuncMocker for a step method.
func RegisterMocker(method string, m FuncMocker) {
	mockerMu.Lock()
	defer mockerMu.Unlock()
	mockerRegistry[method] = m
}

// GetMocker returns the registered FuncMocker for method, or nil. Tests use
// it to set expectations or count calls:
//
//	testkit.GetMocker("sendmail").Mock().AssertNumberOfCalls(t, "Intercept", 1)
func GetMocker(method string) FuncMocker {
	mockerMu.RLock()
	defer mockerMu.RUnlock()
	return mockerRegistry[method]
}

func resetAllMockers() {
	mockerMu.RLock()
	defer mockerMu.RUnlock()
	for _, m := range mockerRegistry {
		m.Reset()
	}
}

// ActivateFuncMocks fires every active non-HTTP mock step in s.
func ActivateFuncMocks(s *Scenario) error {
	for i, step := range s.NetUtilMockStep {
		if step.Method == "httprequest" || !step.IsMock {
			continue
		}
		m := GetMocker(step.Method)
		if m == nil {
			if s.IsMockRequired {
				return fmt.Errorf("testkit: no mocker registered for %q (step %d)", step.Method, i)
			}
			continue
		}

		raw, err := step.ReturnData.decodeBody()
		if err != nil {
			return fmt.Errorf("testkit: step %d: %w", i, err)
		}
		if err := m.Intercept(raw); err != nil {
			return fmt.Errorf("testkit: step %d mock intercept failed: %w", i, err)
		}
	}
	return nil
}

// AssertFuncMocksCalled returns one error per isMock=true non-HTTP step
// whose mocker never ran.
func AssertFuncMocksCalled(s *Scenario) []error {
	var errs []error
	seen := map[string]bool{}
	for _, step := range s.NetUtilMockStep {
		if step.Method == "httprequest" || !step.IsMock || seen[step.Method] {
			continue
		}
		seen[step.Method] = true
		m := GetMocker(step.Method)
		if m == nil {
			continue
		}
		if m.WasCalled() == 0 {
			errs = append(errs, fmt.Errorf(
				"mock %q registered but never called during scenario %q",
				step.Method, s.Name,
			))
		}
	}
	return errs
}
