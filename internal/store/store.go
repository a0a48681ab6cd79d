package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Build records one generated pipeline: the expression it was built from,
// where the artifacts were written and which components it contains.
type Build struct {
	ID         string
	Recipe     string // empty when built from a raw expression
	Pipeline   string
	OutputFile string
	ConfigFile string
	Components []string
	Params     map[string]string
	CreatedAt  time.Time
}

// NewBuildID returns a fresh build identifier.
func NewBuildID() string {
	return "bld_" + uuid.New().String()
}

// ListOptions controls pagination for list queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// Clamp applies defaults and bounds to the pagination options.
func (o *ListOptions) Clamp() {
	if o.Limit <= 0 {
		o.Limit = 50
	}
	if o.Limit > 500 {
		o.Limit = 500
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

// Store defines the persistence layer for build history.
type Store interface {
	CreateBuild(ctx context.Context, b *Build) error
	GetBuild(ctx context.Context, id string) (*Build, error)
	ListBuilds(ctx context.Context, opts ListOptions) ([]*Build, int, error)
	DeleteBuild(ctx context.Context, id string) error

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
