// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package groups

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/jingle-draw/models"
	"github.com/danielhkuo/jingle-draw/store"
)

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrInvalidJoinCode = errors.New("invalid join code")
	ErrGroupFull       = errors.New("group is full")
	ErrAlreadyInGroup  = errors.New("member already belongs to a group")
	ErrMemberNotFound  = errors.New("member not found")
)

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxCodeAttempts bounds the collision retry loop. With a 36^4 code
// space this is never hit in practice.
const maxCodeAttempts = 100

// Directory creates groups, issues join codes, and resolves rosters.
type Directory struct {
	store *store.Store

	rngMu sync.Mutex // guards rng
	rng   *rand.Rand

	// mu serializes every check-then-act window: the capacity check
	// before a membership write, and the code-uniqueness check before
	// a group insert.
	mu sync.Mutex
}

// NewDirectory returns a directory backed by the given store. The rand
// source is injected so tests can seed it deterministically.
func NewDirectory(st *store.Store, rng *rand.Rand) *Directory {
	return &Directory{store: st, rng: rng}
}

func (d *Directory) randomCode() string {
	d.rngMu.Lock()
	defer d.rngMu.Unlock()

	b := make([]byte, models.JoinCodeLength)
	for i := range b {
		b[i] = joinCodeAlphabet[d.rng.IntN(len(joinCodeAlphabet))]
	}
	return string(b)
}

// CreateGroup creates a group with the owner as its sole member and a
// join code unused by any existing group, and sets the owner's group
// reference. The owner must exist and must not already be in a group.
func (d *Directory) CreateGroup(ctx context.Context, name, ownerID string) (models.Group, error) {
	owner, ok, err := d.store.GetMember(ctx, ownerID)
	if err != nil {
		return models.Group{}, err
	}
	if !ok {
		return models.Group{}, ErrMemberNotFound
	}
	if owner.GroupID != nil {
		return models.Group{}, ErrAlreadyInGroup
	}

	// Two concurrent creates could otherwise both see the same code as
	// free and trip the join_code UNIQUE constraint on insert.
	d.mu.Lock()
	defer d.mu.Unlock()

	code, err := d.uniqueCode(ctx)
	if err != nil {
		return models.Group{}, err
	}

	group := models.Group{
		ID:        uuid.NewString(),
		Name:      name,
		JoinCode:  code,
		CreatedAt: time.Now().UTC(),
	}
	if err := d.store.PutGroup(ctx, group); err != nil {
		return models.Group{}, err
	}

	owner.GroupID = &group.ID
	if err := d.store.PutMember(ctx, owner); err != nil {
		return models.Group{}, err
	}

	return group, nil
}

// uniqueCode draws join codes until one is unused.
func (d *Directory) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := d.randomCode()
		_, taken, err := d.store.GetGroupByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to find a free join code after %d attempts", maxCodeAttempts)
}

// Join adds a member to the group identified by a join code. Codes are
// case-insensitive on entry. Fails with ErrGroupFull at capacity.
func (d *Directory) Join(ctx context.Context, code, memberID string) (models.Group, error) {
	code = NormalizeCode(code)

	group, ok, err := d.store.GetGroupByCode(ctx, code)
	if err != nil {
		return models.Group{}, err
	}
	if !ok {
		return models.Group{}, ErrInvalidJoinCode
	}

	member, ok, err := d.store.GetMember(ctx, memberID)
	if err != nil {
		return models.Group{}, err
	}
	if !ok {
		return models.Group{}, ErrMemberNotFound
	}
	if member.GroupID != nil {
		return models.Group{}, ErrAlreadyInGroup
	}

	// Without this, two racing joins could both pass the capacity
	// check and push the group past MaxGroupSize.
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.attach(ctx, group, member)
}

// Enroll stores a brand-new member directly into the group for a join
// code. Unlike Join the member record does not exist yet, so every
// failure (bad code, full group) happens before anything is written.
func (d *Directory) Enroll(ctx context.Context, code string, member models.Member) (models.Group, error) {
	code = NormalizeCode(code)

	group, ok, err := d.store.GetGroupByCode(ctx, code)
	if err != nil {
		return models.Group{}, err
	}
	if !ok {
		return models.Group{}, ErrInvalidJoinCode
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.attach(ctx, group, member)
}

// attach writes a member into a group after the capacity check. The
// caller must hold d.mu so the check and the write are one step.
func (d *Directory) attach(ctx context.Context, group models.Group, member models.Member) (models.Group, error) {
	count, err := d.store.CountGroupMembers(ctx, group.ID)
	if err != nil {
		return models.Group{}, err
	}
	if count >= models.MaxGroupSize {
		return models.Group{}, ErrGroupFull
	}

	member.GroupID = &group.ID
	if err := d.store.PutMember(ctx, member); err != nil {
		return models.Group{}, err
	}

	return group, nil
}

// Resolve returns a group and its live roster.
func (d *Directory) Resolve(ctx context.Context, groupID string) (models.Group, []models.Member, error) {
	group, ok, err := d.store.GetGroup(ctx, groupID)
	if err != nil {
		return models.Group{}, nil, err
	}
	if !ok {
		return models.Group{}, nil, ErrGroupNotFound
	}

	members, err := d.store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return models.Group{}, nil, err
	}
	return group, members, nil
}

// NormalizeCode uppercases and trims a join code for lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
