// Package types contains common types used across the application
package types

// Standing is one ranked podium row within a division report.
type Standing struct {
	UserID            string `json:"user_id"`
	UserDisplayName   string `json:"user_display_name"`
	Rank              int    `json:"rank"`
	TotalTops         int    `json:"total_tops"`
	TotalZones        int    `json:"total_zones"`
	TotalTopAttempts  int    `json:"total_top_attempts"`
	TotalZoneAttempts int    `json:"total_zone_attempts"`
}

// DivisionReport is a division's rollup plus its ordered podium.
type DivisionReport struct {
	DivisionID       string     `json:"division_id"`
	DivisionName     string     `json:"division_name"`
	ParticipantCount int        `json:"participant_count"`
	ProblemCount     int        `json:"problem_count"`
	TotalTops        int        `json:"total_tops"`
	TotalZones       int        `json:"total_zones"`
	Podium           []Standing `json:"podium"`
}

// CompetitionRef identifies the competition a report belongs to.
type CompetitionRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CompetitionReport is the full serialized report. Field names are the
// stable contract with presentation clients.
type CompetitionReport struct {
	Competition CompetitionRef   `json:"competition"`
	Divisions   []DivisionReport `json:"divisions"`
}
