// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package groups

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/jingle-draw/models"
	"github.com/danielhkuo/jingle-draw/store"
	"github.com/danielhkuo/jingle-draw/testutil"
)

func setupDirectory(t *testing.T, seed uint64) (*Directory, *store.Store) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	return NewDirectory(st, testutil.NewTestRand(seed)), st
}

func TestCreateGroup(t *testing.T) {
	dir, st := setupDirectory(t, 1)
	cfg := testutil.GetTestConfig()
	owner := testutil.CreateTestMember(t, st, cfg, "santa@northpole.dev", "Santa", "")

	group, err := dir.CreateGroup(context.Background(), "North Pole", owner.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "North Pole", group.Name)
	require.Len(t, group.JoinCode, models.JoinCodeLength)
	for _, c := range group.JoinCode {
		assert.Contains(t, joinCodeAlphabet, string(c))
	}

	// Owner becomes the sole member
	roster, err := st.ListGroupMembers(context.Background(), group.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, owner.ID, roster[0].ID)
}

func TestCreateGroupOwnerChecks(t *testing.T) {
	dir, st := setupDirectory(t, 2)
	cfg := testutil.GetTestConfig()

	_, err := dir.CreateGroup(context.Background(), "Orphan Workshop", "no-such-member")
	assert.ErrorIs(t, err, ErrMemberNotFound)

	owner := testutil.CreateTestMember(t, st, cfg, "santa@northpole.dev", "Santa", "")
	_, err = dir.CreateGroup(context.Background(), "First", owner.ID)
	require.NoError(t, err)

	_, err = dir.CreateGroup(context.Background(), "Second", owner.ID)
	assert.ErrorIs(t, err, ErrAlreadyInGroup)
}

// TestConcurrentGroupCreations races creations through one directory:
// the uniqueness check and the insert are one step under its lock, so
// no create may fail on a code collision or issue a duplicate code.
func TestConcurrentGroupCreations(t *testing.T) {
	dir, st := setupDirectory(t, 4)
	cfg := testutil.GetTestConfig()

	const creators = 8
	owners := make([]string, creators)
	for i := range owners {
		owner := testutil.CreateTestMember(t, st, cfg, fmt.Sprintf("owner%d@northpole.dev", i), "Owner", "")
		owners[i] = owner.ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, creators)
	for i, ownerID := range owners {
		wg.Add(1)
		go func(i int, ownerID string) {
			defer wg.Done()
			_, err := dir.CreateGroup(context.Background(), fmt.Sprintf("Workshop %d", i), ownerID)
			errs <- err
		}(i, ownerID)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	created, err := st.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, created, creators)

	codes := make(map[string]bool)
	for _, g := range created {
		assert.False(t, codes[g.JoinCode], "join code %s issued twice", g.JoinCode)
		codes[g.JoinCode] = true
	}
}

func TestCreateGroupRetriesOnCodeCollision(t *testing.T) {
	// Learn the first code a seeded source yields, occupy it, then
	// create with an identically seeded directory: it must draw again.
	scout := NewDirectory(nil, testutil.NewTestRand(3))
	firstCode := scout.randomCode()

	dir, st := setupDirectory(t, 3)
	cfg := testutil.GetTestConfig()
	testutil.CreateTestGroup(t, st, "Squatter", firstCode)
	owner := testutil.CreateTestMember(t, st, cfg, "santa@northpole.dev", "Santa", "")

	group, err := dir.CreateGroup(context.Background(), "North Pole", owner.ID)
	require.NoError(t, err)
	assert.NotEqual(t, firstCode, group.JoinCode)
	require.Len(t, group.JoinCode, models.JoinCodeLength)
}

func TestJoin(t *testing.T) {
	dir, st := setupDirectory(t, 4)
	cfg := testutil.GetTestConfig()
	group := testutil.CreateTestGroup(t, st, "North Pole", "XY42")
	joiner := testutil.CreateTestMember(t, st, cfg, "elf@northpole.dev", "Elf", "")

	got, err := dir.Join(context.Background(), "xy42", joiner.ID) // case-insensitive entry
	require.NoError(t, err)
	assert.Equal(t, group.ID, got.ID)

	roster, err := st.ListGroupMembers(context.Background(), group.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, joiner.ID, roster[0].ID)
}

func TestJoinInvalidCode(t *testing.T) {
	dir, st := setupDirectory(t, 5)
	cfg := testutil.GetTestConfig()
	joiner := testutil.CreateTestMember(t, st, cfg, "elf@northpole.dev", "Elf", "")

	_, err := dir.Join(context.Background(), "NOPE", joiner.ID)
	assert.ErrorIs(t, err, ErrInvalidJoinCode)
}

func TestJoinAlreadyInGroup(t *testing.T) {
	dir, st := setupDirectory(t, 6)
	cfg := testutil.GetTestConfig()
	group := testutil.CreateTestGroup(t, st, "North Pole", "XY42")
	other := testutil.CreateTestGroup(t, st, "South Pole", "ZB99")
	m := testutil.CreateTestMember(t, st, cfg, "elf@northpole.dev", "Elf", group.ID)

	_, err := dir.Join(context.Background(), other.JoinCode, m.ID)
	assert.ErrorIs(t, err, ErrAlreadyInGroup)
}

func TestJoinGroupFull(t *testing.T) {
	dir, st := setupDirectory(t, 7)
	cfg := testutil.GetTestConfig()
	group := testutil.CreateTestGroup(t, st, "Packed Workshop", "FULL")

	for i := 0; i < models.MaxGroupSize; i++ {
		email := fmt.Sprintf("elf%d@northpole.dev", i)
		testutil.CreateTestMember(t, st, cfg, email, "Elf", group.ID)
	}

	late := testutil.CreateTestMember(t, st, cfg, "late@northpole.dev", "Latecomer", "")
	_, err := dir.Join(context.Background(), group.JoinCode, late.ID)
	assert.ErrorIs(t, err, ErrGroupFull)

	// One below capacity still works and grows the roster by one
	roomy := testutil.CreateTestGroup(t, st, "Roomy Workshop", "ROOM")
	for i := 0; i < models.MaxGroupSize-1; i++ {
		email := fmt.Sprintf("roomy%d@northpole.dev", i)
		testutil.CreateTestMember(t, st, cfg, email, "Elf", roomy.ID)
	}
	_, err = dir.Join(context.Background(), roomy.JoinCode, late.ID)
	require.NoError(t, err)

	count, err := st.CountGroupMembers(context.Background(), roomy.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaxGroupSize, count)
}

func TestEnroll(t *testing.T) {
	dir, st := setupDirectory(t, 10)
	group := testutil.CreateTestGroup(t, st, "North Pole", "XY42")

	fresh := models.Member{
		ID:          "fresh-1",
		Email:       "fresh@northpole.dev",
		DisplayName: "Fresh Elf",
		Avatar:      "🎄",
	}
	got, err := dir.Enroll(context.Background(), "xy42", fresh)
	require.NoError(t, err)
	assert.Equal(t, group.ID, got.ID)

	stored, ok, err := st.GetMember(context.Background(), fresh.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, stored.GroupID)
	assert.Equal(t, group.ID, *stored.GroupID)
}

func TestEnrollFailsBeforeWriting(t *testing.T) {
	dir, st := setupDirectory(t, 11)
	cfg := testutil.GetTestConfig()
	full := testutil.CreateTestGroup(t, st, "Packed Workshop", "FULL")
	for i := 0; i < models.MaxGroupSize; i++ {
		email := fmt.Sprintf("elf%d@northpole.dev", i)
		testutil.CreateTestMember(t, st, cfg, email, "Elf", full.ID)
	}

	fresh := models.Member{ID: "fresh-2", Email: "fresh@northpole.dev", DisplayName: "Fresh Elf"}

	_, err := dir.Enroll(context.Background(), "NOPE", fresh)
	assert.ErrorIs(t, err, ErrInvalidJoinCode)

	_, err = dir.Enroll(context.Background(), "FULL", fresh)
	assert.ErrorIs(t, err, ErrGroupFull)

	// Neither failure wrote the member record
	_, ok, err := st.GetMember(context.Background(), fresh.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	dir, st := setupDirectory(t, 8)
	cfg := testutil.GetTestConfig()
	group := testutil.CreateTestGroup(t, st, "North Pole", "XY42")
	m1 := testutil.CreateTestMember(t, st, cfg, "a@northpole.dev", "A", group.ID)
	m2 := testutil.CreateTestMember(t, st, cfg, "b@northpole.dev", "B", group.ID)

	got, roster, err := dir.Resolve(context.Background(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, got.ID)
	require.Len(t, roster, 2)
	assert.ElementsMatch(t, []string{m1.ID, m2.ID}, []string{roster[0].ID, roster[1].ID})
}

func TestResolveUnknownGroup(t *testing.T) {
	dir, _ := setupDirectory(t, 9)

	_, _, err := dir.Resolve(context.Background(), "no-such-group")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AB12", NormalizeCode(" ab12 "))
	assert.Equal(t, "XYZ9", NormalizeCode("xYz9"))
}
