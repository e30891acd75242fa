package search

import (
	"context"
	"log/slog"
	"mood-chat/domain"
	"mood-chat/repositories"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *Ledger {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = writer.Close()
		_ = db.Close()
	})
	log := slog.New(slog.DiscardHandler)
	return NewLedger(log, repositories.NewIncidentRepository(db, log), NewIncidentIndex(writer))
}

func incidentAt(at time.Time, outcome domain.Outcome, lang string, keywords ...string) domain.Incident {
	return domain.Incident{
		ID:       uuid.New(),
		Room:     domain.NewRoomID(),
		Handle:   domain.NewHandle(),
		Keywords: keywords,
		Lang:     lang,
		Outcome:  outcome,
		Score:    0.5,
		At:       at,
	}
}

func TestLedger_Record_And_Search(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ledger := newTestLedger(t)
	at := time.Now().UTC()

	// Given three escalated messages
	unsafe := incidentAt(at, domain.OutcomeUnsafe, "en", "kill myself")
	unavailable := incidentAt(at.Add(time.Second), domain.OutcomeUnavailable, "en", "suicide", "self harm")
	french := incidentAt(at.Add(2*time.Second), domain.OutcomeCleared, "fr", "suicide")
	for _, incident := range []domain.Incident{unsafe, unavailable, french} {
		req.NoError(ledger.Record(ctx, incident))
	}

	tests := []struct {
		name     string
		query    string
		expected []uuid.UUID
	}{
		{"Everything newest first", "", []uuid.UUID{french.ID, unavailable.ID, unsafe.ID}},
		{"Keyword", "suicide", []uuid.UUID{french.ID, unavailable.ID}},
		{"Keyword and outcome", "suicide --outcome unavailable", []uuid.UUID{unavailable.ID}},
		{"Language only", "--lang fr", []uuid.UUID{french.ID}},
		{"Limit", "--limit 1", []uuid.UUID{french.ID}},
		{"No match", "coffee", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			incidents, err := ledger.Search(ctx, tt.query, 0)
			req.NoError(err)
			var ids []uuid.UUID
			for _, incident := range incidents {
				ids = append(ids, incident.ID)
			}
			req.Equal(tt.expected, ids)
		})
	}
}

func TestLedger_Search_Explicit_Limit_Wins(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ledger := newTestLedger(t)
	at := time.Now().UTC()

	for i := 0; i < 5; i++ {
		req.NoError(ledger.Record(ctx, incidentAt(at.Add(time.Duration(i)*time.Second), domain.OutcomeUnsafe, "en", "want to die")))
	}

	incidents, err := ledger.Search(ctx, "--limit 4", 2)
	req.NoError(err)
	req.Len(incidents, 2)
}
