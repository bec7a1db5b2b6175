// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Group size and join code constants
const (
	MaxGroupSize   = 20
	JoinCodeLength = 4
)

// Request types

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	GroupCode   string `json:"group_code,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type JoinGroupRequest struct {
	Code string `json:"code"`
}

// Response types

type SessionResponse struct {
	SessionToken string        `json:"session_token"`
	Member       MemberSummary `json:"member"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type DrawResponse struct {
	Match MemberSummary `json:"match"`
}

type SuggestionsResponse struct {
	Ideas []string `json:"ideas"`
}

// Domain types

type Member struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	Avatar         string    `json:"avatar"`
	PasswordDigest string    `json:"-"` // Never expose in JSON
	GroupID        *string   `json:"group_id,omitempty"`
	DrawnMemberID  *string   `json:"-"` // Secret: only revealed to the drawer
	CreatedAt      time.Time `json:"created_at"`
}

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"join_code"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberSummary is the roster-safe view of a member: no credentials,
// no drawn recipient.
type MemberSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	HasDrawn    bool   `json:"has_drawn"`
}

// Summary converts a member to its roster-safe view.
func (m Member) Summary() MemberSummary {
	return MemberSummary{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Avatar:      m.Avatar,
		HasDrawn:    m.DrawnMemberID != nil,
	}
}

type GroupWithMembers struct {
	Group   Group           `json:"group"`
	Members []MemberSummary `json:"members"`
}

// Assignment records one drawn-recipient mutation to persist. A standard
// draw produces one assignment; the deadlock-breaking swap produces two.
type Assignment struct {
	MemberID    string
	RecipientID string
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
