package domain

import (
	"fmt"
	"strings"
)

type BackendID string

const (
	BackendRigettiQVM   BackendID = "rigetti-qvm"
	BackendRigettiQPU   BackendID = "rigetti-qpu"
	BackendQiskitAer    BackendID = "qiskit-aer"
	BackendQiskitIBMQ   BackendID = "qiskit-ibmq"
	BackendGoogleCirq   BackendID = "google-cirq"
	BackendQubitToaster BackendID = "qubit-toaster"
)

// KnownBackends lists every backend in detection order.
var KnownBackends = []BackendID{
	BackendQubitToaster,
	BackendRigettiQVM,
	BackendRigettiQPU,
	BackendQiskitAer,
	BackendQiskitIBMQ,
	BackendGoogleCirq,
}

func ParseBackendID(raw string) (BackendID, error) {
	id := BackendID(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range KnownBackends {
		if id == known {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, raw)
}

type BackendStatus string

const (
	StatusUnknown     BackendStatus = "unknown"
	StatusAvailable   BackendStatus = "available"
	StatusUnavailable BackendStatus = "unavailable"
	StatusBusy        BackendStatus = "busy"
)

// BackendInfo is the per-backend payload of an updateBackends call.
type BackendInfo struct {
	Status   BackendStatus        `json:"status"`
	Devices  *AnnotatedDeviceInfo `json:"devices,omitempty"`
	Backends []string             `json:"backends,omitempty"`
}

// BackendsInfo only carries entries whose status fetch succeeded.
type BackendsInfo map[BackendID]BackendInfo
