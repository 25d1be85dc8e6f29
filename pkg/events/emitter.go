// Package events publishes draw-engine events (generated tickets,
// simulation progress, errors) for downstream group-coordination
// consumers. Payloads are JSON over NATS.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	TypeTickets    = "tickets"
	TypeSimulation = "simulation"
	TypeError      = "error"
)

// Event is the wire envelope for every published message.
type Event struct {
	Type      string `json:"type"`
	Game      string `json:"game"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

type Emitter interface {
	EmitTickets(game string, tickets any) error
	EmitSimulation(game string, result any) error
	EmitError(game string, err error) error
	Emit(event Event) error
	Close()
}

type natsEmitter struct {
	conn    *nats.Conn
	subject string
}

// NewNATSEmitter publishes events on "<prefix>.draws".
func NewNATSEmitter(conn *nats.Conn, subjectPrefix string) Emitter {
	return &natsEmitter{
		conn:    conn,
		subject: fmt.Sprintf("%s.draws", subjectPrefix),
	}
}

func (e *natsEmitter) EmitTickets(game string, tickets any) error {
	return e.Emit(Event{
		Type:      TypeTickets,
		Game:      game,
		Data:      tickets,
		Timestamp: time.Now().UTC().Unix(),
	})
}

func (e *natsEmitter) EmitSimulation(game string, result any) error {
	return e.Emit(Event{
		Type:      TypeSimulation,
		Game:      game,
		Data:      result,
		Timestamp: time.Now().UTC().Unix(),
	})
}

func (e *natsEmitter) EmitError(game string, err error) error {
	payload := map[string]string{}
	if err != nil {
		payload["message"] = err.Error()
	}

	return e.Emit(Event{
		Type:      TypeError,
		Game:      game,
		Data:      payload,
		Timestamp: time.Now().UTC().Unix(),
	})
}

// All event types share one subject; consumers filter on Type.
func (e *natsEmitter) Emit(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return e.conn.Publish(e.subject, data)
}

func (e *natsEmitter) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
}

// nopEmitter is used when no NATS server is configured.
type nopEmitter struct{}

func NewNopEmitter() Emitter { return nopEmitter{} }

func (nopEmitter) EmitTickets(string, any) error    { return nil }
func (nopEmitter) EmitSimulation(string, any) error { return nil }
func (nopEmitter) EmitError(string, error) error    { return nil }
func (nopEmitter) Emit(Event) error                 { return nil }
func (nopEmitter) Close()                           {}
