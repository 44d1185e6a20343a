package usecase

import (
	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/repo"
)

// IdentifierService keeps the local identifier table consistent: before an
// identity may be referenced by a relation (an access right, a group
// membership) it must have a persisted row here. Existence in the directory
// is the caller's concern, matching is purely structural.
type IdentifierService struct {
	db   *memstore.MemoryStoreTxn
	repo *repo.IdentifierRepository
}

func Identifiers(tx *memstore.MemoryStoreTxn) *IdentifierService {
	return &IdentifierService{
		db:   tx,
		repo: repo.NewIdentifierRepository(tx),
	}
}

// GetOrPersist upserts every identity and returns the canonical persisted
// set. Safe to call repeatedly with overlapping sets.
func (s *IdentifierService) GetOrPersist(ids []model.XRoadID) ([]model.XRoadID, error) {
	result := make([]model.XRoadID, 0, len(ids))
	for _, id := range ids {
		row, err := s.repo.GetOrCreate(id)
		if err != nil {
			return nil, err
		}
		result = append(result, row.ID)
	}
	return result, nil
}
