package repositories

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/errors"

	"github.com/dgraph-io/badger/v4"
)

const (
	keywordPrefix      = "keyword:"
	maxConflictRetries = 5
)

var _ contract.IKeywordRepository = (*KeywordRepository)(nil)

// KeywordRepository keeps the crisis phrase list, one key per phrase.
type KeywordRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewKeywordRepository(db *badger.DB, log *slog.Logger) *KeywordRepository {
	return &KeywordRepository{db: db, log: log}
}

// List returns the phrases in key order.
func (r *KeywordRepository) List() ([]string, error) {
	var phrases []string
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(keywordPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			phrases = append(phrases, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return phrases, err
}

// Add stores the normalized phrases. Adding an existing phrase is a no-op.
func (r *KeywordRepository) Add(phrases ...string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		for _, p := range phrases {
			p = domain.NormalizePhrase(p)
			if p == "" {
				continue
			}
			if err := txn.Set([]byte(keywordPrefix+p), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

// Remove deletes a phrase unless it is the last one stored, which returns
// ErrLastKeyword. Removing an unknown phrase is a no-op.
func (r *KeywordRepository) Remove(phrase string) error {
	key := []byte(keywordPrefix + domain.NormalizePhrase(phrase))
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = r.db.Update(func(txn *badger.Txn) error {
			return removeUnlessLast(txn, key)
		})
		if !stderrors.Is(err, badger.ErrConflict) {
			return err
		}
		r.log.Debug("Keyword removal conflicted, retrying", "attempt", attempt+1)
	}
	return err
}

// removeUnlessLast reads every phrase key in txn, so a concurrent removal
// committed first makes this transaction conflict.
func removeUnlessLast(txn *badger.Txn, key []byte) error {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	it := txn.NewIterator(options)
	prefix := []byte(keywordPrefix)
	count, found := 0, false
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		count++
		if bytes.Equal(it.Item().Key(), key) {
			found = true
		}
	}
	it.Close()

	switch {
	case !found:
		return nil
	case count == 1:
		return errors.ErrLastKeyword
	default:
		return txn.Delete(key)
	}
}
