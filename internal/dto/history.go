package dto

import "time"

// HistoryVisit holds the last time a user looked up a domain.
type HistoryVisit struct {
	LastVisited time.Time `json:"last_visited"`
}

// HistoryResponse maps each previously searched domain to its last visit.
type HistoryResponse struct {
	History map[string]HistoryVisit `json:"history"`
}
