package search

import (
	"context"
	"fmt"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/domain"
	domainsearch "mood-chat/domain/search"

	"github.com/google/uuid"
)

var (
	_ contract.IncidentRecorder  = (*Ledger)(nil)
	_ contract.IIncidentSearcher = (*Ledger)(nil)
)

// Ledger stores incidents in the repository and keeps the index in sync.
// The repository is the source of truth: search hits are hydrated from it.
type Ledger struct {
	log        *slog.Logger
	repository contract.IIncidentRepository
	index      *IncidentIndex
}

func NewLedger(log *slog.Logger, repository contract.IIncidentRepository, index *IncidentIndex) *Ledger {
	return &Ledger{log: log, repository: repository, index: index}
}

func (l *Ledger) Record(_ context.Context, incident domain.Incident) error {
	if err := l.repository.Store(incident); err != nil {
		return fmt.Errorf("store incident: %w", err)
	}
	if err := l.index.Index(incident); err != nil {
		return fmt.Errorf("index incident: %w", err)
	}
	l.log.Debug("Incident recorded", "id", incident.ID, "outcome", incident.Outcome)
	return nil
}

// Search accepts the flag syntax of domainsearch.NewSearchQuery. An explicit limit > 0 wins over --limit.
func (l *Ledger) Search(ctx context.Context, raw string, limit int) ([]domain.Incident, error) {
	q := domainsearch.NewSearchQuery(raw)
	if limit > 0 {
		q.Limit = limit
	}
	ids, err := l.index.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	incidents := make([]domain.Incident, 0, len(ids))
	for _, hit := range ids {
		id, err := uuid.Parse(hit)
		if err != nil {
			l.log.Warn("Invalid incident id in index", "id", hit)
			continue
		}
		incident, err := l.repository.Get(id)
		if err != nil {
			l.log.Warn("Indexed incident missing from store", "id", id, "error", err)
			continue
		}
		incidents = append(incidents, incident)
	}
	return incidents, nil
}
