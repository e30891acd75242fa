package repositories

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	IncidentPrefix   = "incident:"
	incidentIDPrefix = "incident_id:"
)

var _ contract.IIncidentRepository = (*IncidentRepository)(nil)

type IncidentRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewIncidentRepository(db *badger.DB, log *slog.Logger) *IncidentRepository {
	return &IncidentRepository{db: db, log: log}
}

// Store persists an incident under "incident:{unix_nano_padded}:{uuid}" so that
// a prefix scan returns them in chronological order, plus a secondary
// "incident_id:{uuid}" key pointing to it.
func (r *IncidentRepository) Store(incident domain.Incident) error {
	key := incidentKey(incident)
	value, err := encodeIncident(incident)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, value); err != nil {
			return err
		}
		return txn.Set([]byte(incidentIDPrefix+incident.ID.String()), key)
	})
}

func (r *IncidentRepository) Get(id uuid.UUID) (domain.Incident, error) {
	var incident domain.Incident
	err := r.db.View(func(txn *badger.Txn) error {
		pointer, err := txn.Get([]byte(incidentIDPrefix + id.String()))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrIncidentNotFound
		}
		if err != nil {
			return err
		}
		key, err := pointer.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			incident, err = DecodeIncident(value)
			return err
		})
	})
	return incident, err
}

// List returns at most limit incidents, newest first. A limit <= 0 returns them all.
func (r *IncidentRepository) List(limit int) ([]domain.Incident, error) {
	var incidents []domain.Incident
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(IncidentPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts after the last possible key of the prefix
		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(incidents) == limit {
				break
			}
			err := it.Item().Value(func(value []byte) error {
				incident, err := DecodeIncident(value)
				if err != nil {
					return err
				}
				incidents = append(incidents, incident)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return incidents, err
}

func incidentKey(incident domain.Incident) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", IncidentPrefix, incident.At.UnixNano(), incident.ID))
}

func encodeIncident(incident domain.Incident) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"id":       incident.ID.String(),
		"room":     string(incident.Room),
		"handle":   string(incident.Handle),
		"keywords": lo.ToAnySlice(incident.Keywords),
		"lang":     incident.Lang,
		"outcome":  string(incident.Outcome),
		"score":    incident.Score,
		// Nanoseconds do not fit a float64, keep the timestamp as text
		"at": incident.At.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("encode incident: %w", err)
	}
	return proto.Marshal(s)
}

// DecodeIncident reads one value stored under IncidentPrefix.
func DecodeIncident(value []byte) (domain.Incident, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return domain.Incident{}, err
	}
	fields := s.GetFields()

	id, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return domain.Incident{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, fields["at"].GetStringValue())
	if err != nil {
		return domain.Incident{}, err
	}
	var keywords []string
	for _, v := range fields["keywords"].GetListValue().GetValues() {
		keywords = append(keywords, v.GetStringValue())
	}

	return domain.Incident{
		ID:       id,
		Room:     domain.RoomID(fields["room"].GetStringValue()),
		Handle:   domain.Handle(fields["handle"].GetStringValue()),
		Keywords: keywords,
		Lang:     fields["lang"].GetStringValue(),
		Outcome:  domain.Outcome(fields["outcome"].GetStringValue()),
		Score:    fields["score"].GetNumberValue(),
		At:       at,
	}, nil
}
