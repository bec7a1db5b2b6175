// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/danielhkuo/jingle-draw/groups"
	"github.com/danielhkuo/jingle-draw/models"
	"github.com/danielhkuo/jingle-draw/store"
)

// Engine runs draws against the store. Each draw is a critical section
// per group: resolve roster, plan, persist, all under that group's
// lock, so concurrent drawers can't both claim the same recipient.
type Engine struct {
	store *store.Store
	dir   *groups.Directory

	rngMu sync.Mutex // rand.Rand is not goroutine-safe
	rng   *rand.Rand

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine returns an engine with an injected rand source.
func NewEngine(st *store.Store, dir *groups.Directory, rng *rand.Rand) *Engine {
	return &Engine{
		store: st,
		dir:   dir,
		rng:   rng,
		locks: make(map[string]*sync.Mutex),
	}
}

// groupLock returns the mutex for a group, creating it on first use.
// Locks are never removed; the set of groups a process touches is
// small.
func (e *Engine) groupLock(groupID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.locks[groupID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[groupID] = l
	}
	return l
}

// Draw assigns a recipient to the requesting member, or returns the
// existing one. Failure modes, in precondition order:
// groups.ErrGroupNotFound, ErrMemberNotInGroup, ErrInsufficientMembers,
// ErrDeadlockUnresolvable. No writes happen on any failure path.
func (e *Engine) Draw(ctx context.Context, memberID, groupID string) (models.Member, error) {
	l := e.groupLock(groupID)
	l.Lock()
	defer l.Unlock()

	_, roster, err := e.dir.Resolve(ctx, groupID)
	if err != nil {
		return models.Member{}, err
	}

	e.rngMu.Lock()
	outcome, err := Plan(roster, memberID, e.rng)
	e.rngMu.Unlock()
	if err != nil {
		return models.Member{}, err
	}

	if err := e.store.ApplyAssignments(ctx, outcome.Assignments); err != nil {
		return models.Member{}, err
	}
	return outcome.Match, nil
}
