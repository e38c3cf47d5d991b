package domain

import "time"

// RunReport summarises one Load -> Filter -> Enrich run
type RunReport struct {
	RunID         string         `json:"runId"`
	Source        string         `json:"source"`
	Loaded        int            `json:"loaded"`
	Kept          int            `json:"kept"`
	DroppedByRule map[string]int `json:"droppedByRule"`
	StartedAt     time.Time      `json:"startedAt"`
	Duration      time.Duration  `json:"duration"`
}
