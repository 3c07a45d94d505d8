package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantastica/qps-client/internal/adapters/lock"
	"github.com/quantastica/qps-client/internal/domain"
)

type scriptedResponse struct {
	output string
	err    error
}

// scriptedRunner answers known command lines and fails everything else as a
// missing executable.
type scriptedRunner struct {
	mu        sync.Mutex
	responses map[string]scriptedResponse
	inputs    map[string][]string
}

func newScriptedRunner(responses map[string]scriptedResponse) *scriptedRunner {
	return &scriptedRunner{responses: responses, inputs: map[string][]string{}}
}

func (r *scriptedRunner) Run(_ context.Context, commandLine string, input string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inputs[commandLine] = append(r.inputs[commandLine], input)
	if response, ok := r.responses[commandLine]; ok {
		return response.output, response.err
	}
	return "", &domain.ExecutionError{Command: commandLine, Err: exec.ErrNotFound}
}

func (r *scriptedRunner) inputsFor(commandLine string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.inputs[commandLine]...)
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), nil, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestDetectJSONListsFoundBackends(t *testing.T) {
	runner := newScriptedRunner(map[string]scriptedResponse{
		"qubit-toaster -v": {output: "qubit-toaster 0.1.3\n"},
	})

	stdout, _, err := executeCLI(t, t.TempDir(), runner, "", "detect", "--json")
	require.NoError(t, err)

	var found []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &found))
	assert.Equal(t, []string{"qubit-toaster"}, found)
}

func TestDetectWithoutBackends(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), newScriptedRunner(nil), "", "detect")
	require.NoError(t, err)
	assert.Equal(t, "no backends found\n", stdout)
}

func TestStatusJSONForExplicitBackend(t *testing.T) {
	runner := newScriptedRunner(map[string]scriptedResponse{
		"python -": {output: "qasm_simulator\nstatevector_simulator\n"},
	})

	stdout, _, err := executeCLI(t, t.TempDir(), runner, "", "status", "--backend", "qiskit-aer", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))

	var output statusOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.Equal(t, domain.StatusAvailable, output.Statuses[domain.BackendQiskitAer])
	assert.Equal(t, domain.StatusUnavailable, output.Statuses[domain.BackendRigettiQVM])
	assert.Equal(t, []string{"qasm_simulator", "statevector_simulator"}, output.Backends[domain.BackendQiskitAer].Backends)
}

func TestStatusRendersConfiguredBackends(t *testing.T) {
	t.Setenv("QPS_BACKENDS", "qubit-toaster")

	stdout, _, err := executeCLI(t, t.TempDir(), newScriptedRunner(nil), "", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Quantum Backends")
	assert.Contains(t, stdout, "backends: 1 available of 6")
	assert.Contains(t, stdout, "qubit-toaster")
}

func TestStatusRejectsUnknownBackend(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), newScriptedRunner(nil), "", "status", "--backend", "ionq")
	require.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestRunToasterPrintsResult(t *testing.T) {
	home := t.TempDir()
	circuitPath := filepath.Join(home, "bell.json")
	require.NoError(t, os.WriteFile(circuitPath, []byte(`{"qubits":2,"program":[{"name":"h","wires":[0]}]}`+"\n"), 0o644))

	runner := newScriptedRunner(map[string]scriptedResponse{
		"qubit-toaster -": {output: "{\"00\": 512, \"11\": 512}\n"},
	})

	stdout, stderr, err := executeCLI(t, home, runner, "", "run", "--backend", "qubit-toaster", "--circuit", circuitPath)
	require.NoError(t, err)
	assert.Equal(t, "{\"00\": 512, \"11\": 512}\n", stdout)
	assert.Contains(t, stderr, "Running circuit with 2 qubits on qubit-toaster...")
	assert.Equal(t, []string{`{"qubits":2,"program":[{"name":"h","wires":[0]}]}`}, runner.inputsFor("qubit-toaster -"))
}

func TestRunReadsCircuitFromStdin(t *testing.T) {
	runner := newScriptedRunner(map[string]scriptedResponse{
		"qubit-toaster -": {output: "{\"0\": 1024}\n"},
	})

	stdout, _, err := executeCLI(t, t.TempDir(), runner, `{"qubits":1}`, "run", "--backend", "qubit-toaster", "--circuit", "-")
	require.NoError(t, err)
	assert.Equal(t, "{\"0\": 1024}\n", stdout)
}

func TestRunFailureReturnsError(t *testing.T) {
	home := t.TempDir()
	circuitPath := filepath.Join(home, "circuit.json")
	require.NoError(t, os.WriteFile(circuitPath, []byte(`{"qubits":1}`), 0o644))

	runner := newScriptedRunner(map[string]scriptedResponse{
		"qubit-toaster -": {output: "unknown gate: foo\n", err: &domain.ExecutionError{Command: "qubit-toaster -", Output: "unknown gate: foo\n"}},
	})

	stdout, stderr, err := executeCLI(t, home, runner, "", "run", "--backend", "qubit-toaster", "--circuit", circuitPath)
	require.ErrorIs(t, err, errJobFailed)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error: unknown gate: foo")
}

func TestRunRequiresFlags(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), newScriptedRunner(nil), "", "run", "--backend", "qubit-toaster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"circuit\" not set")
}

func TestRunRejectsInvalidCircuit(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), newScriptedRunner(nil), "{not json", "run", "--backend", "qubit-toaster", "--circuit", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestServeHandlesEventsUntilInputCloses(t *testing.T) {
	t.Setenv("QPS_BACKENDS", "qubit-toaster")

	runner := newScriptedRunner(map[string]scriptedResponse{
		"qubit-toaster -": {output: "{\"1\": 1024}\n"},
	})
	input := strings.Join([]string{
		`{"command":"run_toaster","payload":{"circuit":{"qubits":1}}}`,
		`{"command":"run_braket"}`,
		`not json`,
		`{"command":"get_backends"}`,
	}, "\n") + "\n"

	stdout, stderr, err := executeCLI(t, t.TempDir(), runner, input, "serve")
	require.NoError(t, err)

	type call struct {
		ID     string            `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}

	var calls []call
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		var c call
		require.NoError(t, json.Unmarshal([]byte(line), &c), line)
		assert.NotEmpty(t, c.ID)
		calls = append(calls, c)
	}

	methods := map[string]int{}
	var phases []string
	for _, c := range calls {
		methods[c.Method]++
		if c.Method == "updateBackendsOutput" {
			require.Len(t, c.Params, 3)
			var phase string
			require.NoError(t, json.Unmarshal(c.Params[2], &phase))
			phases = append(phases, phase)
		}
	}

	assert.Equal(t, 2, methods["updateBackends"])
	assert.Equal(t, []string{"busy", "success"}, phases)
	assert.Contains(t, stderr, "unknown command")
	assert.Contains(t, stderr, "parse event line 3")
}

func TestServeRefusesSecondInstance(t *testing.T) {
	home := t.TempDir()
	lockPath := filepath.Join(home, "qps.lock")
	t.Setenv("QPS_LOCK_PATH", lockPath)

	held, err := lock.Acquire(context.Background(), lockPath, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = held.Release() })

	_, _, err = executeCLI(t, home, newScriptedRunner(nil), "", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another instance holds the lock")
}

func TestProfileInitShowAndForce(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, nil, "", "profile", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(home, ".qps", "backends.toml"))

	_, _, err = executeCLI(t, home, nil, "", "profile", "init")
	require.ErrorIs(t, err, errProfileExists)

	_, _, err = executeCLI(t, home, nil, "", "profile", "init", "--force", "--python-executable", "python3")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, nil, "", "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "python.executable")
	assert.Contains(t, stdout, "python3")
	assert.Contains(t, stdout, "qcs reservations")
	assert.Contains(t, stdout, "(circuit payload)")
}

func TestInvalidSettingsFailBeforeCommandRuns(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), nil, "", "detect", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log.format")
}

func executeCLI(t *testing.T, home string, runner *scriptedRunner, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	a := &app{settings: viper.New()}
	if runner != nil {
		a.runner = runner
	}

	root := newRootCmdWithApp(a)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
