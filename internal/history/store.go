package history

import (
	"encoding/json"
	"sort"
	"sync"
)

const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 10

	// TopCountriesSize caps Stats.TopCountries.
	TopCountriesSize = 5
)

// Record is one successful lookup.
type Record struct {
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// CountryCount is a country with its lookup count. It is encoded as a
// two-element JSON array: ["Germany", 3].
type CountryCount struct {
	Country string
	Count   int
}

func (c CountryCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Country, c.Count})
}

// Stats summarises the store contents.
type Stats struct {
	TotalLookups      int            `json:"total_lookups"`
	UniqueIPs         int            `json:"unique_ips"`
	CountriesAccessed int            `json:"countries_accessed"`
	TopCountries      []CountryCount `json:"top_countries"`
}

// Store is a mutex guarded, append-only list of records.
type Store struct {
	mu      sync.Mutex
	records []Record
}

func New() *Store {
	return &Store{}
}

// Append adds r at the end. Duplicates are kept.
func (s *Store) Append(r Record) {
	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()
}

// List returns a copy of the last limit records, oldest first. Fewer records
// are returned when the store holds fewer than limit.
func (s *Store) List(limit int) ([]Record, error) {
	records, _, err := s.Snapshot(limit)
	return records, err
}

// Snapshot is List plus the total number of records, both read under the
// same lock.
func (s *Store) Snapshot(limit int) ([]Record, int, error) {
	if limit < MinLimit || limit > MaxLimit {
		return nil, 0, ErrInvalidLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.records)
	start := max(total-limit, 0)
	out := make([]Record, total-start)
	copy(out, s.records[start:])
	return out, total, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Clear drops every record and returns how many there were.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	s.records = nil
	return n
}

// Stats computes totals and the most looked up countries. Countries with
// equal counts keep the order in which they were first seen.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	ips := make(map[string]struct{}, len(s.records))
	counts := make(map[string]int)
	var order []string
	for _, r := range s.records {
		ips[r.IP] = struct{}{}
		if _, seen := counts[r.Country]; !seen {
			order = append(order, r.Country)
		}
		counts[r.Country]++
	}

	top := make([]CountryCount, 0, len(order))
	for _, c := range order {
		top = append(top, CountryCount{Country: c, Count: counts[c]})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > TopCountriesSize {
		top = top[:TopCountriesSize]
	}

	return Stats{
		TotalLookups:      len(s.records),
		UniqueIPs:         len(ips),
		CountriesAccessed: len(counts),
		TopCountries:      top,
	}
}
