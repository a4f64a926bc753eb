package usecase

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"inventory-assistant/internal/model"
	pkgLog "inventory-assistant/pkg/log"
)

const (
	defaultSessionCap = 1024
	defaultSessionTTL = 30 * time.Minute
)

// Runner is the workflow entry point the use case drives.
type Runner interface {
	Run(ctx context.Context, state model.TurnState) model.TurnState
}

// sessionEntry is what a turn leaves behind for follow-ups.
type sessionEntry struct {
	response  string
	dbResults map[string][]model.Record
}

// implUseCase is the private implementation of chat.UseCase.
type implUseCase struct {
	graph    Runner
	sessions *expirable.LRU[string, sessionEntry]
	l        pkgLog.Logger
}

// New creates a new chat UseCase implementation. A non-positive TTL or
// capacity falls back to the defaults.
func New(graph Runner, l pkgLog.Logger, sessionCap int, sessionTTL time.Duration) *implUseCase {
	if sessionCap <= 0 {
		sessionCap = defaultSessionCap
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &implUseCase{
		graph:    graph,
		sessions: expirable.NewLRU[string, sessionEntry](sessionCap, nil, sessionTTL),
		l:        l,
	}
}
