package app

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gendriver/internal/configfile"
	"github.com/vk/gendriver/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// RunCall is one command observed by a RecordingRunner.
type RunCall struct {
	Dir  string
	Argv []string
}

// RecordingRunner is a host.CommandRunner that records commands instead of
// running them. Err, when set, is returned for every call.
type RecordingRunner struct {
	mu    sync.Mutex
	Calls []RunCall
	Err   error
}

func (r *RecordingRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, []byte, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, RunCall{Dir: dir, Argv: append([]string{name}, args...)})
	if r.Err != nil {
		return nil, nil, 1, r.Err
	}
	return nil, nil, 0, nil
}

// SetupAppTest creates a new app instance for system testing. Commands are
// captured by the returned runner.
func SetupAppTest(t *testing.T, appConfig *Config, modules ...registry.Module) (*App, *RecordingRunner, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	cfg, err := NewConfig(*appConfig)
	require.NoError(t, err)

	testApp, err := NewApp(logBuffer, cfg, configfile.NewLoader(), modules...)
	require.NoError(t, err)
	runner := &RecordingRunner{}
	testApp.UseRunner(runner)

	t.Cleanup(func() {
		if os.Getenv("GENDRIVER_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, runner, logBuffer
}
