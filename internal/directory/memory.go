package directory

import (
	"context"

	"github.com/growthrule/pacewatch/pkg/types"
)

// Compile-time interface satisfaction check.
var _ Directory = (*Memory)(nil)

// Memory is an in-memory Directory for tests.
type Memory struct {
	Searches map[string]types.CampaignSearch
	Users    map[string]types.User
}

// NewMemory creates an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{
		Searches: make(map[string]types.CampaignSearch),
		Users:    make(map[string]types.User),
	}
}

func (m *Memory) LookupCampaignSearch(_ context.Context, searchID string) (types.CampaignSearch, error) {
	search, ok := m.Searches[searchID]
	if !ok {
		return types.CampaignSearch{}, ErrNotFound
	}
	return search, nil
}

func (m *Memory) LookupUser(_ context.Context, userID string) (types.User, error) {
	user, ok := m.Users[userID]
	if !ok {
		return types.User{}, ErrNotFound
	}
	return user, nil
}
