package domain

import (
	"encoding/json"
	"fmt"
)

type JobPhase string

const (
	PhaseBusy    JobPhase = "busy"
	PhaseSuccess JobPhase = "success"
	PhaseError   JobPhase = "error"
)

func (p JobPhase) Terminal() bool {
	return p == PhaseSuccess || p == PhaseError
}

// Circuit is the serialized circuit as received from the remote side.
type Circuit struct {
	Raw json.RawMessage
}

// QubitCount reads the qubit count from the serialized circuit. Zero means unknown.
func (c Circuit) QubitCount() int {
	var header struct {
		Qubits    *int `json:"qubits"`
		NumQubits *int `json:"numQubits"`
	}
	if err := json.Unmarshal(c.Raw, &header); err != nil {
		return 0
	}
	if header.Qubits != nil {
		return *header.Qubits
	}
	if header.NumQubits != nil {
		return *header.NumQubits
	}
	return 0
}

type JobRequest struct {
	ID            string
	Command       string
	Backend       BackendID
	Circuit       Circuit
	TargetLattice string
	Provider      string
	BackendName   string
	SimulateOnly  bool
}

func (r JobRequest) BusyMessage() string {
	qubits := r.Circuit.QubitCount()
	if qubits <= 0 {
		return fmt.Sprintf("Running circuit on %s...", r.Backend)
	}
	suffix := "qubits"
	if qubits == 1 {
		suffix = "qubit"
	}
	return fmt.Sprintf("Running circuit with %d %s on %s...", qubits, suffix, r.Backend)
}

type JobOutcome struct {
	JobID   string
	Backend BackendID
	Phase   JobPhase
	Text    string
}

// Event is one inbound transport message.
type Event struct {
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
