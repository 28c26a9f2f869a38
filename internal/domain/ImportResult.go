package domain

import "time"

// ImportResult é o resultado de uma execução do importador incremental
type ImportResult struct {
	RunID              string     `json:"runId"`
	Imported           int        `json:"imported"`
	Message            string     `json:"message"`
	LatestDate         *time.Time `json:"latestDate"`
	PreviousLatestDate *time.Time `json:"previousLatestDate"`
}
