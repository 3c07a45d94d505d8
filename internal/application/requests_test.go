package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantastica/qps-client/internal/domain"
)

func TestDecodeJobRequestResolvesTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
		payload string
		want    domain.BackendID
	}{
		{name: "qvm without lattice", command: CommandRunQVM, payload: `{"circuit":{"qubits":2}}`, want: domain.BackendRigettiQVM},
		{name: "qpu with lattice", command: CommandRunQVM, payload: `{"circuit":{"qubits":2},"lattice":"Aspen-1-2Q-B"}`, want: domain.BackendRigettiQPU},
		{name: "lattice as qvm", command: CommandRunQVM, payload: `{"circuit":{"qubits":2},"lattice":"Aspen-1-2Q-B","as_qvm":true}`, want: domain.BackendRigettiQVM},
		{name: "aer by default", command: CommandRunQiskit, payload: `{"circuit":{"qubits":2},"backend":"qasm_simulator"}`, want: domain.BackendQiskitAer},
		{name: "ibmq provider", command: CommandRunQiskit, payload: `{"circuit":{"qubits":2},"provider":"IBMQ","backend":"ibmqx4"}`, want: domain.BackendQiskitIBMQ},
		{name: "toaster", command: CommandRunToaster, payload: `{"circuit":{"qubits":2}}`, want: domain.BackendQubitToaster},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := DecodeJobRequest(domain.Event{Command: tt.command, Payload: []byte(tt.payload)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Backend)
			assert.Equal(t, tt.command, req.Command)
			assert.Equal(t, 2, req.Circuit.QubitCount())
		})
	}
}

func TestDecodeJobRequestCopiesSelectionFields(t *testing.T) {
	t.Parallel()

	req, err := DecodeJobRequest(domain.Event{
		Command: CommandRunQiskit,
		Payload: []byte(`{"circuit":{"numQubits":3},"provider":" IBMQ ","backend":"ibmqx4","lattice":""}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "IBMQ", req.Provider)
	assert.Equal(t, "ibmqx4", req.BackendName)
	assert.False(t, req.SimulateOnly)
	assert.Equal(t, "Running circuit with 3 qubits on qiskit-ibmq...", req.BusyMessage())
}

func TestDecodeJobRequestFailuresKeepTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "no payload", wantErr: domain.ErrEmptyCircuit},
		{name: "no circuit", payload: `{"lattice":"Aspen-1-2Q-B"}`, wantErr: domain.ErrEmptyCircuit},
		{name: "null circuit", payload: `{"circuit":null}`, wantErr: domain.ErrEmptyCircuit},
		{name: "malformed", payload: `{"circuit":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := DecodeJobRequest(domain.Event{Command: CommandRunToaster, Payload: []byte(tt.payload)})
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, domain.BackendQubitToaster, req.Backend)
		})
	}
}

func TestDecodeJobRequestUnknownCommand(t *testing.T) {
	t.Parallel()

	req, err := DecodeJobRequest(domain.Event{Command: "run_braket"})
	require.ErrorIs(t, err, domain.ErrUnknownCommand)
	assert.Empty(t, req.Backend)
}
