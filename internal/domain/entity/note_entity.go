package entity

import (
	"time"
)

// Note is owned by exactly one user; ownership never transfers.
// SharedWithUserIDs holds the grantee set: no duplicates, never the
// owner's own id. DateModified stays nil until the first update.
type Note struct {
	ID                string     `json:"id"`
	OwnerID           string     `json:"ownerId"`
	Title             string     `json:"title"`
	Body              string     `json:"body"`
	SharedWithUserIDs []string   `json:"sharedWithUserIds"`
	DateAdded         time.Time  `json:"dateAdded"`
	DateModified      *time.Time `json:"dateModified,omitempty"`
}
