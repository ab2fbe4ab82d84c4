package entity

import "time"

// HistoryEntry records when a user last looked up a domain. There is at
// most one entry per (user, domain) pair; repeated lookups overwrite
// LastVisited rather than appending.
type HistoryEntry struct {
	UserID      string    `json:"user_id" bson:"user_id"`
	Domain      string    `json:"domain" bson:"domain"`
	LastVisited time.Time `json:"last_visited" bson:"last_visited"`
}
