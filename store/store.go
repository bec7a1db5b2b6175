// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/jingle-draw/models"
)

// Store is the durable entity store for members, groups, and sessions.
// It holds no state of its own; all cross-request state is the
// persisted records themselves.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const memberColumns = "id, email, display_name, avatar, password_digest, group_id, drawn_member_id, created_at"

func scanMember(row interface{ Scan(...any) error }) (models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.Email, &m.DisplayName, &m.Avatar,
		&m.PasswordDigest, &m.GroupID, &m.DrawnMemberID, &m.CreatedAt)
	return m, err
}

// GetMember looks up a member by ID. Absence is not an error: the
// second return value reports whether the member exists.
func (s *Store) GetMember(ctx context.Context, id string) (models.Member, bool, error) {
	m, err := scanMember(s.db.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM member WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return models.Member{}, false, nil
	}
	if err != nil {
		return models.Member{}, false, fmt.Errorf("failed to query member: %w", err)
	}
	return m, true, nil
}

// GetMemberByEmail looks up a member by normalized email.
func (s *Store) GetMemberByEmail(ctx context.Context, email string) (models.Member, bool, error) {
	m, err := scanMember(s.db.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM member WHERE email = $1", email))
	if err == sql.ErrNoRows {
		return models.Member{}, false, nil
	}
	if err != nil {
		return models.Member{}, false, fmt.Errorf("failed to query member by email: %w", err)
	}
	return m, true, nil
}

// ListGroupMembers returns the live roster of a group in a stable
// order. Members deleted out from underneath the group simply don't
// appear; callers see only records that still exist.
func (s *Store) ListGroupMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+memberColumns+" FROM member WHERE group_id = $1 ORDER BY created_at, id", groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListMembers returns every member record in creation order.
func (s *Store) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+memberColumns+" FROM member ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// PutMember inserts or replaces a member record, keyed by ID.
func (s *Store) PutMember(ctx context.Context, m models.Member) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO member (id, email, display_name, avatar, password_digest, group_id, drawn_member_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			avatar = excluded.avatar,
			password_digest = excluded.password_digest,
			group_id = excluded.group_id,
			drawn_member_id = excluded.drawn_member_id
	`, m.ID, m.Email, m.DisplayName, m.Avatar, m.PasswordDigest, m.GroupID, m.DrawnMemberID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to put member: %w", err)
	}
	return nil
}

// GetGroup looks up a group by ID.
func (s *Store) GetGroup(ctx context.Context, id string) (models.Group, bool, error) {
	var g models.Group
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, join_code, created_at FROM gift_group WHERE id = $1", id).
		Scan(&g.ID, &g.Name, &g.JoinCode, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Group{}, false, nil
	}
	if err != nil {
		return models.Group{}, false, fmt.Errorf("failed to query group: %w", err)
	}
	return g, true, nil
}

// GetGroupByCode looks up a group by its normalized join code.
func (s *Store) GetGroupByCode(ctx context.Context, code string) (models.Group, bool, error) {
	var g models.Group
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, join_code, created_at FROM gift_group WHERE join_code = $1", code).
		Scan(&g.ID, &g.Name, &g.JoinCode, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Group{}, false, nil
	}
	if err != nil {
		return models.Group{}, false, fmt.Errorf("failed to query group by code: %w", err)
	}
	return g, true, nil
}

// CountGroupMembers returns the current roster size of a group.
func (s *Store) CountGroupMembers(ctx context.Context, groupID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM member WHERE group_id = $1", groupID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count group members: %w", err)
	}
	return n, nil
}

// ListGroups returns every group record in creation order.
func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, join_code, created_at FROM gift_group ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.JoinCode, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// PutGroup inserts or replaces a group record, keyed by ID.
func (s *Store) PutGroup(ctx context.Context, g models.Group) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gift_group (id, name, join_code, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			join_code = excluded.join_code
	`, g.ID, g.Name, g.JoinCode, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to put group: %w", err)
	}
	return nil
}

// ApplyAssignments persists drawn-recipient mutations in a single
// transaction, so a swap's two record updates appear atomic to
// subsequent reads. No-op for an empty list.
func (s *Store) ApplyAssignments(ctx context.Context, assignments []models.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, a := range assignments {
		res, err := tx.ExecContext(ctx,
			"UPDATE member SET drawn_member_id = $1 WHERE id = $2", a.RecipientID, a.MemberID)
		if err != nil {
			return fmt.Errorf("failed to apply assignment: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("assignment references unknown member %s", a.MemberID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}
	return nil
}

// PutSession records a session token for a member.
func (s *Store) PutSession(ctx context.Context, token, memberID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (token, member_id, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
	`, token, memberID)
	if err != nil {
		return fmt.Errorf("failed to put session: %w", err)
	}
	return nil
}

// GetSessionMember resolves a session token to its member.
func (s *Store) GetSessionMember(ctx context.Context, token string) (models.Member, bool, error) {
	m, err := scanMember(s.db.QueryRowContext(ctx, `
		SELECT m.id, m.email, m.display_name, m.avatar, m.password_digest, m.group_id, m.drawn_member_id, m.created_at
		FROM session s
		JOIN member m ON m.id = s.member_id
		WHERE s.token = $1
	`, token))
	if err == sql.ErrNoRows {
		return models.Member{}, false, nil
	}
	if err != nil {
		return models.Member{}, false, fmt.Errorf("failed to query session: %w", err)
	}
	return m, true, nil
}

// DeleteSession removes a session token. Deleting an unknown token is
// not an error.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE token = $1", token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
