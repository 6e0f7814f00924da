// Package storetest provides an in-memory store.Store for tests.
package storetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/growthrule/pacewatch/internal/store"
	"github.com/growthrule/pacewatch/pkg/types"
)

// Compile-time interface satisfaction check.
var _ store.Store = (*Memory)(nil)

// Memory is an in-memory Store. Safe for concurrent use. The error fields
// inject failures into individual operations.
type Memory struct {
	mu      sync.Mutex
	nextID  int
	order   []string
	interim map[string]types.AlertRecord
	pacing  map[string]types.AlertRecord
	alerts  map[string]types.AlertsMartRecord

	FailAppend       error
	FailUpdate       error
	FailPacingInsert error
	FailAlertsInsert error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		interim: make(map[string]types.AlertRecord),
		pacing:  make(map[string]types.AlertRecord),
		alerts:  make(map[string]types.AlertsMartRecord),
	}
}

func (m *Memory) AppendInterim(_ context.Context, rec types.AlertRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAppend != nil {
		return "", m.FailAppend
	}
	m.nextID++
	docID := fmt.Sprintf("doc-%d", m.nextID)
	rec.DocID = docID
	m.interim[docID] = rec
	m.order = append(m.order, docID)
	return docID, nil
}

func (m *Memory) ListInterim(_ context.Context) ([]types.AlertRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := make([]types.AlertRecord, 0, len(m.order))
	for _, id := range m.order {
		recs = append(recs, m.interim[id])
	}
	return recs, nil
}

func (m *Memory) QueryInterim(_ context.Context, processDate, platform, status string) ([]types.AlertRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var recs []types.AlertRecord
	for _, id := range m.order {
		rec := m.interim[id]
		if rec.ProcessDate == processDate && rec.Platform == platform && rec.ProcessStatus == status {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (m *Memory) UpdateInterimMessage(_ context.Context, docID, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUpdate != nil {
		return m.FailUpdate
	}
	rec, ok := m.interim[docID]
	if !ok {
		return fmt.Errorf("interim record %s not found", docID)
	}
	rec.ErrorRuleMessage = message
	m.interim[docID] = rec
	return nil
}

func (m *Memory) InsertPacingMart(_ context.Context, rec types.AlertRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPacingInsert != nil {
		return false, m.FailPacingInsert
	}
	key := rec.NaturalKey()
	if _, ok := m.pacing[key]; ok {
		return false, nil
	}
	m.pacing[key] = rec
	return true, nil
}

func (m *Memory) InsertAlertsMart(_ context.Context, rec types.AlertsMartRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAlertsInsert != nil {
		return false, m.FailAlertsInsert
	}
	key := rec.NaturalKey()
	if _, ok := m.alerts[key]; ok {
		return false, nil
	}
	m.alerts[key] = rec
	return true, nil
}

func (m *Memory) Ping(_ context.Context) error { return nil }

// InterimRecord returns one interim document by ID.
func (m *Memory) InterimRecord(docID string) (types.AlertRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.interim[docID]
	return rec, ok
}

// PacingCount reports how many records the pacing mart holds.
func (m *Memory) PacingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pacing)
}

// AlertsCount reports how many records the alerts datamart holds.
func (m *Memory) AlertsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.alerts)
}

// AlertsRecord returns one alerts datamart record by natural key.
func (m *Memory) AlertsRecord(key string) (types.AlertsMartRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.alerts[key]
	return rec, ok
}
