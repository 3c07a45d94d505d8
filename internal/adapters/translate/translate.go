// Package translate turns a serialized circuit into program text for a
// backend's native format.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
)

// PayloadTranslator serves programs compiled ahead of time by the sender.
// The toaster format is the circuit JSON itself; other formats are read from
// the circuit's "programs" object.
type PayloadTranslator struct{}

var _ ports.Translator = PayloadTranslator{}

func (PayloadTranslator) Translate(ctx context.Context, circuit domain.Circuit, format domain.ProgramFormat, _ domain.TranslateHints) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(circuit.Raw) == 0 {
		return "", domain.ErrEmptyCircuit
	}

	if format == domain.FormatToaster {
		return string(circuit.Raw), nil
	}

	var envelope struct {
		Programs map[string]string `json:"programs"`
	}
	if err := json.Unmarshal(circuit.Raw, &envelope); err != nil {
		return "", fmt.Errorf("decode circuit: %w", err)
	}

	program := envelope.Programs[string(format)]
	if strings.TrimSpace(program) == "" {
		return "", fmt.Errorf("%w %s", domain.ErrNoProgram, format)
	}
	return program, nil
}

// CommandTranslator pipes the circuit through an external converter.
type CommandTranslator struct {
	runner  ports.Runner
	command string
}

var _ ports.Translator = (*CommandTranslator)(nil)

func NewCommandTranslator(runner ports.Runner, command string) *CommandTranslator {
	return &CommandTranslator{runner: runner, command: strings.TrimSpace(command)}
}

func (t *CommandTranslator) Translate(ctx context.Context, circuit domain.Circuit, format domain.ProgramFormat, hints domain.TranslateHints) (string, error) {
	if len(circuit.Raw) == 0 {
		return "", domain.ErrEmptyCircuit
	}

	program, err := t.runner.Run(ctx, t.commandLine(format, hints), string(circuit.Raw))
	if err != nil {
		return "", fmt.Errorf("run converter: %w", err)
	}
	if strings.TrimSpace(program) == "" {
		return "", fmt.Errorf("%w %s", domain.ErrNoProgram, format)
	}
	return program, nil
}

func (t *CommandTranslator) commandLine(format domain.ProgramFormat, hints domain.TranslateHints) string {
	args := []string{t.command, "--format", string(format)}
	if hints.Lattice != "" {
		args = append(args, "--lattice", hints.Lattice)
	}
	if hints.AsQVM {
		args = append(args, "--as-qvm")
	}
	if hints.Provider != "" {
		args = append(args, "--provider", hints.Provider)
	}
	if hints.BackendName != "" {
		args = append(args, "--backend", hints.BackendName)
	}
	return strings.Join(args, " ")
}

// New picks the converter command when one is configured.
func New(runner ports.Runner, profile domain.TranslatorProfile) ports.Translator {
	if strings.TrimSpace(profile.Command) == "" {
		return PayloadTranslator{}
	}
	return NewCommandTranslator(runner, profile.Command)
}
