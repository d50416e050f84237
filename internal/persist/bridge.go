// Package persist loads and saves the task list as one serialized blob in key-scoped storage.
package persist

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo/internal/storage"
	"todo/internal/task"
)

const (
	// DefaultKey is the storage key holding the task list.
	DefaultKey = "task"

	// CorruptSuffix is appended to the key to keep a copy of unreadable data.
	CorruptSuffix = ".corrupt"

	schemaURL = "tasks.schema.json"
)

//go:embed tasks.schema.json
var schemaJSON string

var tasksSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("add task schema: %v", err))
	}
	return compiler.MustCompile(schemaURL)
}

// Bridge is the load/save boundary between the task list and storage.
type Bridge struct {
	store storage.Storage
	key   string
}

// New creates a bridge writing under key. An empty key means DefaultKey.
func New(store storage.Storage, key string) *Bridge {
	if key == "" {
		key = DefaultKey
	}
	return &Bridge{store: store, key: key}
}

// Key returns the storage key.
func (b *Bridge) Key() string {
	return b.key
}

// Load reads the stored task list.
//
// A missing key yields an empty list. Data that does not parse or does not
// match the task schema is logged, copied aside under Key()+CorruptSuffix and
// also yields an empty list. Only storage failures are returned as errors.
func (b *Bridge) Load(ctx context.Context) (task.Store, error) {
	logger := log.FromContext(ctx)

	raw, ok, err := b.store.GetItem(ctx, b.key)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		logger.Debug("no stored tasks", "key", b.key)
		return task.Store{}, nil
	}

	tasks, err := Decode(raw)
	if err != nil {
		logger.Warn("stored tasks are unreadable, starting empty", "key", b.key, "err", err)
		if err := b.store.SetItem(ctx, b.key+CorruptSuffix, raw); err != nil {
			logger.Error("could not keep a copy of unreadable tasks", "err", err)
		}
		return task.Store{}, nil
	}

	tasks, dropped := dedupe(tasks)
	for _, id := range dropped {
		logger.Warn("dropping task with duplicate id", "id", id)
	}

	logger.Debug("loaded tasks", "key", b.key, "count", len(tasks))
	return tasks, nil
}

// Save overwrites the stored task list with s.
func (b *Bridge) Save(ctx context.Context, s task.Store) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := b.store.SetItem(ctx, b.key, data); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	log.FromContext(ctx).Debug("saved tasks", "key", b.key, "count", len(s))
	return nil
}

// Encode serializes s as a JSON array. An empty or nil store encodes as "[]".
func Encode(s task.Store) (string, error) {
	if s == nil {
		s = task.Store{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses and validates a serialized task list.
func Decode(raw string) (task.Store, error) {
	var doc any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if err := tasksSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}

	var s task.Store
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if s == nil {
		s = task.Store{}
	}
	return s, nil
}

// dedupe keeps the first task for each id.
func dedupe(s task.Store) (task.Store, []int64) {
	seen := make(map[int64]bool, len(s))
	out := make(task.Store, 0, len(s))
	var dropped []int64
	for _, t := range s {
		if seen[t.ID] {
			dropped = append(dropped, t.ID)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, dropped
}
