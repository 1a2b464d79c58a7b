// Package quote provides the in-memory quote store.
// A single lock guards the primary map and the tax-id index together, so
// a reader can never observe a record that is present but not yet
// indexed (or the reverse). The lock is held only for the map access,
// never across pipeline steps.
package quote

import (
	"sync"
	"time"

	"quote-engine/core/types"
	"quote-engine/internal/errors"
)

// Store is the concurrency-guarded quote record store
type Store struct {
	mu sync.RWMutex

	// Primary index: quote id -> record
	records map[string]types.QuoteRecord

	// Secondary index: tax id -> quote ids, append-only in issue order
	byTaxID map[string][]string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		records: make(map[string]types.QuoteRecord),
		byTaxID: make(map[string][]string),
	}
}

// Put inserts a record and indexes it by tax id atomically.
// Quote ids are unique; re-inserting an existing id is a storage error.
func (s *Store) Put(record types.QuoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.ID]; exists {
		return errors.Newf(errors.TypeStorage, "quote already stored: %s", record.ID)
	}

	s.records[record.ID] = record
	if record.Request.TaxID != "" {
		s.byTaxID[record.Request.TaxID] = append(s.byTaxID[record.Request.TaxID], record.ID)
	}
	return nil
}

// GetByID returns the record for a quote id
func (s *Store) GetByID(id string) (types.QuoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return types.QuoteRecord{}, errors.NotFound("quote", id)
	}
	return record, nil
}

// GetByTaxID returns all records issued for a business, most recent first
func (s *Store) GetByTaxID(taxID string) []types.QuoteRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byTaxID[taxID]
	records := make([]types.QuoteRecord, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if record, ok := s.records[ids[i]]; ok {
			records = append(records, record)
		}
	}
	return records
}

// Len returns the number of stored records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// MarkExpired transitions Quoted records past their expiration to
// Expired and returns the affected ids. The quoting pipeline never calls
// this; it exists for the retention collaborator.
func (s *Store) MarkExpired(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for id, record := range s.records {
		if record.Status == types.StatusQuoted && record.ExpiresAt.Before(now) {
			record.Status = types.StatusExpired
			s.records[id] = record
			expired = append(expired, id)
		}
	}
	return expired
}
