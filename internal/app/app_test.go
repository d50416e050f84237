package app

import (
	"context"
	"os"
	"testing"

	"todo/internal/backend/localfile"
	"todo/internal/config"
)

func TestOpen_BackendsPersistAcrossSessions(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg, err := config.New(t.TempDir())
			if err != nil {
				t.Fatal(err)
			}
			cfg.Backend = backend

			a, err := Open(ctx, cfg)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if _, _, err := a.AddTask(ctx, "buy milk"); err != nil {
				t.Fatalf("AddTask: %v", err)
			}
			if err := a.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			b, err := Open(ctx, cfg)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer b.Close()

			tasks := b.Tasks()
			if len(tasks) != 1 || tasks[0].Text != "buy milk" || tasks[0].Completed {
				t.Errorf("unexpected tasks after reopen: %#v", tasks)
			}
		})
	}
}

func TestOpenStorage_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), Backend: "redis"}
	if _, err := OpenStorage(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpen_MemoryBackendStartsEmpty(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), Backend: config.BackendMemory, StorageKey: "task"}
	a, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()
	if !a.Mounted() || len(a.Tasks()) != 0 {
		t.Errorf("expected mounted empty list, got mounted=%v tasks=%#v", a.Mounted(), a.Tasks())
	}
}

func TestOpen_UnreadableDataFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// A bare task array is not the key/value document the file backend writes
	raw := `[{"id":1,"text":"a","completed":false}]`
	if err := os.WriteFile(cfg.DataPath(), []byte(raw), 0600); err != nil {
		t.Fatal(err)
	}

	a, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	if !a.Mounted() || len(a.Tasks()) != 0 {
		t.Errorf("expected mounted empty list, got mounted=%v tasks=%#v", a.Mounted(), a.Tasks())
	}
	kept, err := os.ReadFile(cfg.DataPath() + localfile.CorruptSuffix)
	if err != nil {
		t.Fatalf("expected unreadable file kept: %v", err)
	}
	if string(kept) != raw {
		t.Errorf("unexpected kept data %q", kept)
	}

	if _, _, err := a.AddTask(ctx, "buy milk"); err != nil {
		t.Fatalf("AddTask after recovery: %v", err)
	}
}
