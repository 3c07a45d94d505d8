// Package jsonl speaks newline-delimited JSON over a reader/writer pair.
// Inbound lines are events; outbound lines are method calls.
package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
)

const maxLineSize = 16 << 20

type callMessage struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

type lineResult struct {
	lineNo int
	line   []byte
	err    error
}

type Conn struct {
	writeMu sync.Mutex
	w       io.Writer
	newID   func() string

	lines     chan lineResult
	readOnce  sync.Once
	r         io.Reader
	done      chan struct{}
	closeOnce sync.Once
}

var (
	_ ports.Caller      = (*Conn)(nil)
	_ ports.EventSource = (*Conn)(nil)
)

func NewConn(r io.Reader, w io.Writer) *Conn {
	return &Conn{
		r:     r,
		w:     w,
		newID: uuid.NewString,
		lines: make(chan lineResult),
		done:  make(chan struct{}),
	}
}

// Call writes one method call line. Concurrent calls never interleave.
func (c *Conn) Call(ctx context.Context, method string, args ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := args
	if params == nil {
		params = []any{}
	}
	data, err := json.Marshal(callMessage{ID: c.newID(), Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("marshal %s call: %w", method, err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, err := c.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write %s call: %w", method, err)
	}
	return nil
}

// Receive returns the next event. Blank lines are skipped. A malformed line
// returns an error and the next call continues with the following line. At
// end of input or after Close it returns io.EOF.
func (c *Conn) Receive(ctx context.Context) (domain.Event, error) {
	c.readOnce.Do(func() { go c.readLines() })

	for {
		if c.closed() {
			return domain.Event{}, io.EOF
		}

		var result lineResult
		var ok bool
		select {
		case <-ctx.Done():
			return domain.Event{}, ctx.Err()
		case <-c.done:
			return domain.Event{}, io.EOF
		case result, ok = <-c.lines:
		}
		if !ok {
			return domain.Event{}, io.EOF
		}
		if result.err != nil {
			return domain.Event{}, fmt.Errorf("read events: %w", result.err)
		}

		line := bytes.TrimSpace(result.line)
		if len(line) == 0 {
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(line, &event); err != nil {
			return domain.Event{}, fmt.Errorf("parse event line %d: %w", result.lineNo, err)
		}
		if event.Command == "" {
			return domain.Event{}, fmt.Errorf("parse event line %d: %w", result.lineNo, errMissingCommand)
		}
		return event, nil
	}
}

var errMissingCommand = errors.New("missing command")

// Close stops delivering events. The reader goroutine exits once its pending
// read returns; the underlying reader is not closed.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

func (c *Conn) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Conn) readLines() {
	defer close(c.lines)

	sc := bufio.NewScanner(c.r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if !c.send(lineResult{lineNo: lineNo, line: bytes.Clone(sc.Bytes())}) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		c.send(lineResult{lineNo: lineNo, err: err})
	}
}

func (c *Conn) send(result lineResult) bool {
	select {
	case c.lines <- result:
		return true
	case <-c.done:
		return false
	}
}
