package container_test

import (
	"errors"
	"time"

	"github.com/km-arc/go-inject/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Logger struct{ Name string }

func NewLogger() *Logger { return &Logger{Name: "default"} }

type JSONLogger struct{ Name string }

func NewJSONLogger() *JSONLogger { return &JSONLogger{Name: "json"} }

type Request struct{ Seq int }

type Config struct{ DSN string }

type Database struct {
	Config *Config
	Logger *Logger
}

func NewDatabase(cfg *Config, log *Logger) *Database {
	return &Database{Config: cfg, Logger: log}
}

// valueErr implements error on a value receiver.
type valueErr struct{}

func (valueErr) Error() string { return "value error" }

type Repo struct {
	DB    *Database
	Limit int
}

func NewRepo(db *Database, limit int) *Repo { return &Repo{DB: db, Limit: limit} }

// A and B depend on each other; B holds the back-reference.
type A struct{ B *B }
type B struct{ A container.Lazy[*A] }

func NewA(b *B) *A                 { return &A{B: b} }
func NewB(a container.Lazy[*A]) *B { return &B{A: a} }

// Ping and Pong both hold lazy references so either can be resolved first.
type Ping struct{ Pong container.Lazy[*Pong] }
type Pong struct{ Ping container.Lazy[*Ping] }

func NewPing(p container.Lazy[*Pong]) *Ping { return &Ping{Pong: p} }
func NewPong(p container.Lazy[*Ping]) *Pong { return &Pong{Ping: p} }

// Tight cycle through plain parameters.
type Left struct{ Right *Right }
type Right struct{ Left *Left }

func NewLeft(r *Right) *Left  { return &Left{Right: r} }
func NewRight(l *Left) *Right { return &Right{Left: l} }

var errBoom = errors.New("boom")

func failingCtor() (*Logger, error) { return nil, errBoom }

// ── recording observer ────────────────────────────────────────────────────────

type event struct {
	op     string
	id     string
	kind   container.Kind
	flag   bool
	failed error
}

type recorder struct{ events []event }

func (r *recorder) Registered(id string, kind container.Kind, replaced bool) {
	r.events = append(r.events, event{op: "registered", id: id, kind: kind, flag: replaced})
}

func (r *recorder) Resolved(id string, kind container.Kind, cached bool, _ time.Duration) {
	r.events = append(r.events, event{op: "resolved", id: id, kind: kind, flag: cached})
}

func (r *recorder) Failed(id string, err error) {
	r.events = append(r.events, event{op: "failed", id: id, failed: err})
}

func (r *recorder) ops(op string) []event {
	var out []event
	for _, e := range r.events {
		if e.op == op {
			out = append(out, e)
		}
	}
	return out
}

// ── counting store ────────────────────────────────────────────────────────────

type countingStore struct {
	*container.MapStore[any]
	sets []string
}

func newCountingStore() *countingStore {
	return &countingStore{MapStore: container.NewMapStore[any]()}
}

func (s *countingStore) Set(key string, v any) {
	s.sets = append(s.sets, key)
	s.MapStore.Set(key, v)
}
