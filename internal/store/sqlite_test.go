package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleBuild() *Build {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &Build{
		ID:         NewBuildID(),
		Recipe:     "innuca",
		Pipeline:   "integrity_coverage fastqc_trimmomatic spades",
		OutputFile: "/tmp/pipeline.nf",
		ConfigFile: "/tmp/nextflow.config",
		Components: []string{"integrity_coverage", "fastqc_trimmomatic", "spades"},
		Params:     map[string]string{"genomeSize": "2.5"},
		CreatedAt:  now,
	}
}

// --- Migration tests ---

func TestMigrate_Idempotent(t *testing.T) {
	st := testStore(t)
	// Migrate a second time — should not error.
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

// --- Build CRUD tests ---

func TestNewBuildID(t *testing.T) {
	id := NewBuildID()
	if !strings.HasPrefix(id, "bld_") {
		t.Errorf("id = %q, want bld_ prefix", id)
	}
	if id == NewBuildID() {
		t.Error("two build IDs should not collide")
	}
}

func TestCreateAndGetBuild(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	b := sampleBuild()

	if err := st.CreateBuild(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := st.GetBuild(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("got nil build")
	}
	if got.ID != b.ID {
		t.Errorf("id = %q, want %q", got.ID, b.ID)
	}
	if got.Recipe != "innuca" {
		t.Errorf("recipe = %q, want innuca", got.Recipe)
	}
	if got.Pipeline != b.Pipeline {
		t.Errorf("pipeline = %q, want %q", got.Pipeline, b.Pipeline)
	}
	if got.ConfigFile != b.ConfigFile {
		t.Errorf("config_file = %q, want %q", got.ConfigFile, b.ConfigFile)
	}
	if len(got.Components) != 3 || got.Components[0] != "integrity_coverage" {
		t.Errorf("components = %v", got.Components)
	}
	if got.Params["genomeSize"] != "2.5" {
		t.Errorf("params = %v, want genomeSize=2.5", got.Params)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, b.CreatedAt)
	}
}

func TestGetBuild_NotFound(t *testing.T) {
	st := testStore(t)
	got, err := st.GetBuild(context.Background(), "bld_nonexistent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestListBuilds_Empty(t *testing.T) {
	st := testStore(t)
	builds, total, err := st.ListBuilds(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if len(builds) != 0 {
		t.Errorf("len = %d, want 0", len(builds))
	}
}

func TestListBuilds_Pagination(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	// Create 3 builds with staggered timestamps.
	var last string
	for i := 0; i < 3; i++ {
		b := sampleBuild()
		b.ID = fmt.Sprintf("bld_test-%d", i)
		b.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		if err := st.CreateBuild(ctx, b); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		last = b.ID
	}

	// Page 1: limit 2.
	builds, total, err := st.ListBuilds(ctx, ListOptions{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(builds) != 2 {
		t.Errorf("page 1 len = %d, want 2", len(builds))
	}

	// Page 2: offset 2.
	builds, _, err = st.ListBuilds(ctx, ListOptions{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(builds) != 1 {
		t.Errorf("page 2 len = %d, want 1", len(builds))
	}

	// Newest first order.
	builds, _, _ = st.ListBuilds(ctx, ListOptions{Limit: 10, Offset: 0})
	if builds[0].ID != last {
		t.Errorf("first = %q, want %q (newest first)", builds[0].ID, last)
	}
}

func TestDeleteBuild(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	b := sampleBuild()
	st.CreateBuild(ctx, b)

	if err := st.DeleteBuild(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, _ := st.GetBuild(ctx, b.ID)
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestDeleteBuild_NotFound(t *testing.T) {
	st := testStore(t)
	if err := st.DeleteBuild(context.Background(), "bld_nonexistent"); err == nil {
		t.Error("expected error for nonexistent build")
	}
}
