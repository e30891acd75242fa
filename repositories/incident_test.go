package repositories

import (
	"mood-chat/domain"
	"mood-chat/errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newIncident(at time.Time, outcome domain.Outcome, keywords ...string) domain.Incident {
	return domain.Incident{
		ID:       uuid.New(),
		Room:     domain.NewRoomID(),
		Handle:   domain.NewHandle(),
		Keywords: keywords,
		Lang:     "en",
		Outcome:  outcome,
		Score:    0.93,
		At:       at,
	}
}

func TestIncidentRepository_Store_And_Get(t *testing.T) {
	req := require.New(t)
	repository := NewIncidentRepository(openTestDB(t), testLogger())
	incident := newIncident(time.Now().UTC(), domain.OutcomeUnsafe, "kill myself", "suicide")

	req.NoError(repository.Store(incident))

	fetched, err := repository.Get(incident.ID)
	req.NoError(err)
	req.Equal(incident.ID, fetched.ID)
	req.Equal(incident.Room, fetched.Room)
	req.Equal(incident.Keywords, fetched.Keywords)
	req.Equal(incident.Outcome, fetched.Outcome)
	req.InDelta(incident.Score, fetched.Score, 1e-9)
	req.True(incident.At.Equal(fetched.At))
}

func TestIncidentRepository_Get_Unknown(t *testing.T) {
	req := require.New(t)
	repository := NewIncidentRepository(openTestDB(t), testLogger())

	_, err := repository.Get(uuid.New())

	req.ErrorIs(err, errors.ErrIncidentNotFound)
}

func TestIncidentRepository_List_Newest_First_With_Limit(t *testing.T) {
	req := require.New(t)
	repository := NewIncidentRepository(openTestDB(t), testLogger())
	at := time.Now().UTC()

	// Given three incidents one minute apart
	first := newIncident(at, domain.OutcomeUnsafe, "suicide")
	second := newIncident(at.Add(time.Minute), domain.OutcomeUnavailable, "self harm")
	third := newIncident(at.Add(2*time.Minute), domain.OutcomeCleared, "want to die")
	for _, incident := range []domain.Incident{second, third, first} {
		req.NoError(repository.Store(incident))
	}

	// When listing with a limit of two
	incidents, err := repository.List(2)

	// Then the two most recent come back, newest first
	req.NoError(err)
	req.Len(incidents, 2)
	req.Equal(third.ID, incidents[0].ID)
	req.Equal(second.ID, incidents[1].ID)

	all, err := repository.List(0)
	req.NoError(err)
	req.Len(all, 3)
}
