package types

// Stats aggregates the outcome of one organization run. Counters only
// ever grow during a run; a single aggregator goroutine owns the
// struct, so no locking is needed by consumers reading it afterwards.
type Stats struct {
	TotalFiles      int            `json:"total_files"`
	Moved           int            `json:"moved"`
	Skipped         int            `json:"skipped"`
	Errors          int            `json:"errors"`
	DuplicatesFound int            `json:"duplicates_found"`
	TotalBytes      int64          `json:"total_bytes"`
	PerCategory     map[string]int `json:"per_category"`
}

// NewStats returns an empty Stats ready to accumulate into.
func NewStats() *Stats {
	return &Stats{PerCategory: make(map[string]int)}
}

// CountCategory bumps the counter for one category.
func (s *Stats) CountCategory(category string) {
	if category == "" {
		return
	}
	s.PerCategory[category]++
}
