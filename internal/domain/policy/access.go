// Package policy holds the note authorization rules. Decisions are
// pure functions over (ownerID, grantee set, callerID, operation) so
// they can be exercised without any storage in place.
package policy

import (
	"slices"

	"github.com/notesapp/notes-api/internal/domain/entity"
)

// Operation is a requested action on a note.
type Operation int

const (
	OpRead Operation = iota
	OpUpdate
	OpDelete
	OpShare
)

// Allowed reports whether callerID may perform op on a note with the
// given owner and grantee set. Reading is open to the owner and every
// grantee; update, delete and share are owner-only, even for grantees.
func Allowed(ownerID string, sharedWith []string, callerID string, op Operation) bool {
	if callerID == ownerID {
		return true
	}
	if op == OpRead {
		return slices.Contains(sharedWith, callerID)
	}
	return false
}

// CanRead is shorthand for Allowed with OpRead.
func CanRead(n *entity.Note, callerID string) bool {
	return Allowed(n.OwnerID, n.SharedWithUserIDs, callerID, OpRead)
}

// Redact returns a copy of n safe to show to callerID. A non-owner
// must never observe the real grantee list, only their own id in it;
// the owner sees the full list. The stored note is never mutated.
func Redact(n *entity.Note, callerID string) *entity.Note {
	out := *n
	if n.OwnerID != callerID {
		out.SharedWithUserIDs = []string{callerID}
	} else {
		out.SharedWithUserIDs = slices.Clone(n.SharedWithUserIDs)
	}
	return &out
}

// FilterVisible keeps only the notes callerID may read and redacts
// each one. Notes the caller has no relation to are silently dropped,
// never reported as an error.
func FilterVisible(notes []entity.Note, callerID string) []entity.Note {
	out := make([]entity.Note, 0, len(notes))
	for i := range notes {
		if !CanRead(&notes[i], callerID) {
			continue
		}
		out = append(out, *Redact(&notes[i], callerID))
	}
	return out
}
