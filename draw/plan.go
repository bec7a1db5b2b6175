// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/danielhkuo/jingle-draw/models"
)

var (
	ErrMemberNotInGroup     = errors.New("member is not in this group")
	ErrInsufficientMembers  = errors.New("at least 2 members are needed to draw")
	ErrDeadlockUnresolvable = errors.New("not enough participants to complete a valid assignment")
)

// Outcome is the result of planning a draw: the matched member, plus
// the record mutations to persist. Assignments is empty when the
// requester had already drawn (idempotent case).
type Outcome struct {
	Match       models.Member
	Assignments []models.Assignment
}

// Plan computes the next assignment for a requesting member as a pure
// function of the roster snapshot. It never touches storage; callers
// persist Outcome.Assignments afterwards.
//
// Rules, in order:
//
//  1. Requester must be in the roster.
//  2. If the requester already drew, return that match unchanged and
//     consume no randomness.
//  3. Pick uniformly among candidates: not the requester, not already
//     claimed as someone's recipient.
//  4. If no candidate exists and the requester is the sole unclaimed
//     member, steal a recipient from another drawer and hand the
//     requester to them instead (two mutations).
//  5. Anything else is an unresolvable deadlock.
func Plan(roster []models.Member, requesterID string, rng *rand.Rand) (Outcome, error) {
	byID := make(map[string]models.Member, len(roster))
	var requester *models.Member
	for i := range roster {
		byID[roster[i].ID] = roster[i]
		if roster[i].ID == requesterID {
			requester = &roster[i]
		}
	}
	if requester == nil {
		return Outcome{}, ErrMemberNotInGroup
	}

	// Idempotent: the draw is durable once made.
	if requester.DrawnMemberID != nil {
		match, ok := byID[*requester.DrawnMemberID]
		if !ok {
			return Outcome{}, fmt.Errorf("drawn recipient %s is no longer in the roster", *requester.DrawnMemberID)
		}
		return Outcome{Match: match}, nil
	}

	if len(roster) < 2 {
		return Outcome{}, ErrInsufficientMembers
	}

	// Recipients already claimed by someone's draw.
	claimed := make(map[string]bool)
	for _, m := range roster {
		if m.DrawnMemberID != nil {
			claimed[*m.DrawnMemberID] = true
		}
	}

	var candidates []models.Member
	for _, m := range roster {
		if m.ID != requesterID && !claimed[m.ID] {
			candidates = append(candidates, m)
		}
	}

	if len(candidates) > 0 {
		match := candidates[rng.IntN(len(candidates))]
		return Outcome{
			Match:       match,
			Assignments: []models.Assignment{{MemberID: requesterID, RecipientID: match.ID}},
		}, nil
	}

	// Deadlock: every eligible recipient is the requester or already
	// claimed. Resolvable only when the requester is the sole unclaimed
	// member (the last-drawer problem).
	var unclaimed []models.Member
	for _, m := range roster {
		if !claimed[m.ID] {
			unclaimed = append(unclaimed, m)
		}
	}

	if len(unclaimed) == 1 && unclaimed[0].ID == requesterID {
		// Steal a recipient from someone who didn't draw the requester.
		for _, swapper := range roster {
			if swapper.DrawnMemberID == nil || *swapper.DrawnMemberID == requesterID {
				continue
			}
			stolen, ok := byID[*swapper.DrawnMemberID]
			if !ok {
				continue
			}
			return Outcome{
				Match: stolen,
				Assignments: []models.Assignment{
					{MemberID: requesterID, RecipientID: stolen.ID},
					{MemberID: swapper.ID, RecipientID: requesterID},
				},
			}, nil
		}
	}

	return Outcome{}, ErrDeadlockUnresolvable
}
