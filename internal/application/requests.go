package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quantastica/qps-client/internal/domain"
)

const (
	CommandRunQVM      = "run_qvm"
	CommandRunQiskit   = "run_qiskit"
	CommandRunToaster  = "run_toaster"
	CommandGetBackends = "get_backends"

	providerIBMQ = "ibmq"
)

type runPayload struct {
	Circuit  json.RawMessage `json:"circuit"`
	Lattice  string          `json:"lattice"`
	AsQVM    bool            `json:"as_qvm"`
	Provider string          `json:"provider"`
	Backend  string          `json:"backend"`
}

// DecodeJobRequest turns a run_* event into a job request. The returned
// request names its target backend even when decoding fails, so the failure
// can still be reported against it.
func DecodeJobRequest(event domain.Event) (domain.JobRequest, error) {
	req := domain.JobRequest{Command: event.Command, Backend: defaultTarget(event.Command)}
	if req.Backend == "" {
		return req, fmt.Errorf("%w: %q", domain.ErrUnknownCommand, event.Command)
	}

	if len(event.Payload) == 0 {
		return req, fmt.Errorf("decode %s payload: %w", event.Command, domain.ErrEmptyCircuit)
	}

	var payload runPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return req, fmt.Errorf("decode %s payload: %w", event.Command, err)
	}

	req.Circuit = domain.Circuit{Raw: payload.Circuit}
	req.TargetLattice = strings.TrimSpace(payload.Lattice)
	req.Provider = strings.TrimSpace(payload.Provider)
	req.BackendName = strings.TrimSpace(payload.Backend)
	req.SimulateOnly = payload.AsQVM
	req.Backend = resolveTarget(event.Command, req)

	if len(req.Circuit.Raw) == 0 || string(req.Circuit.Raw) == "null" {
		return req, fmt.Errorf("decode %s payload: %w", event.Command, domain.ErrEmptyCircuit)
	}

	return req, nil
}

func defaultTarget(command string) domain.BackendID {
	switch command {
	case CommandRunQVM:
		return domain.BackendRigettiQVM
	case CommandRunQiskit:
		return domain.BackendQiskitAer
	case CommandRunToaster:
		return domain.BackendQubitToaster
	default:
		return ""
	}
}

func resolveTarget(command string, req domain.JobRequest) domain.BackendID {
	switch command {
	case CommandRunQVM:
		if req.TargetLattice != "" && !req.SimulateOnly {
			return domain.BackendRigettiQPU
		}
	case CommandRunQiskit:
		if strings.EqualFold(req.Provider, providerIBMQ) {
			return domain.BackendQiskitIBMQ
		}
	}
	return defaultTarget(command)
}
