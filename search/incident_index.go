// Package search indexes moderation incidents for the admin surface.
package search

import (
	"context"
	"mood-chat/domain"
	domainsearch "mood-chat/domain/search"
	"strings"

	"github.com/blugelabs/bluge"
)

const (
	fieldKeywords = "keywords"
	fieldOutcome  = "outcome"
	fieldLang     = "lang"
	fieldRoom     = "room"
	fieldAt       = "at"
)

// IncidentIndex is a Bluge index over incident metadata. Documents are keyed by incident id.
type IncidentIndex struct {
	writer *bluge.Writer
}

func NewIncidentIndex(writer *bluge.Writer) *IncidentIndex {
	return &IncidentIndex{writer: writer}
}

func (i *IncidentIndex) Index(incident domain.Incident) error {
	doc := bluge.NewDocument(incident.ID.String()).
		AddField(bluge.NewTextField(fieldKeywords, strings.Join(incident.Keywords, " "))).
		AddField(bluge.NewKeywordField(fieldOutcome, string(incident.Outcome))).
		AddField(bluge.NewKeywordField(fieldLang, incident.Lang)).
		AddField(bluge.NewKeywordField(fieldRoom, string(incident.Room))).
		AddField(bluge.NewDateTimeField(fieldAt, incident.At).Sortable())
	return i.writer.Update(doc.ID(), doc)
}

// Search returns the ids of matching incidents, newest first.
func (i *IncidentIndex) Search(ctx context.Context, q *domainsearch.Query) ([]string, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	request := bluge.NewTopNSearch(q.Limit, toBlugeQuery(q)).SortBy([]string{"-" + fieldAt})
	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var ids []string
	match, err := matches.Next()
	for err == nil && match != nil {
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
				return false
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		match, err = matches.Next()
	}
	return ids, err
}

func toBlugeQuery(q *domainsearch.Query) bluge.Query {
	if q.IsEmpty() {
		return bluge.NewMatchAllQuery()
	}
	query := bluge.NewBooleanQuery()
	if q.Terms != "" {
		query.AddMust(bluge.NewMatchQuery(q.Terms).SetField(fieldKeywords))
	}
	for field, value := range q.Filters {
		query.AddMust(bluge.NewTermQuery(value).SetField(field))
	}
	return query
}
