package repositories

import (
	"mood-chat/errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeywordRepository_Add_List_Remove(t *testing.T) {
	req := require.New(t)
	repository := NewKeywordRepository(openTestDB(t), testLogger())

	// Given an empty repository
	phrases, err := repository.List()
	req.NoError(err)
	req.Empty(phrases)

	// When phrases are added, with noise
	req.NoError(repository.Add("Suicide", "  self harm ", "", "suicide"))

	// Then they are stored once, normalized
	phrases, err = repository.List()
	req.NoError(err)
	req.Equal([]string{"self harm", "suicide"}, phrases)

	// When one is removed, twice
	req.NoError(repository.Remove("SUICIDE"))
	req.NoError(repository.Remove("suicide"))

	phrases, err = repository.List()
	req.NoError(err)
	req.Equal([]string{"self harm"}, phrases)
}

func TestKeywordRepository_Collapses_Inner_Whitespace(t *testing.T) {
	req := require.New(t)
	repository := NewKeywordRepository(openTestDB(t), testLogger())

	// Given a phrase typed with a run of spaces and a tab
	req.NoError(repository.Add("suicide", "Kill   \tMyself"))

	// Then it is stored the way the matcher reads it
	phrases, err := repository.List()
	req.NoError(err)
	req.Equal([]string{"kill myself", "suicide"}, phrases)

	// And removing the single-spaced form deletes it
	req.NoError(repository.Remove("kill myself"))
	phrases, err = repository.List()
	req.NoError(err)
	req.Equal([]string{"suicide"}, phrases)
}

func TestKeywordRepository_Refuses_To_Remove_Last_Phrase(t *testing.T) {
	req := require.New(t)
	repository := NewKeywordRepository(openTestDB(t), testLogger())
	req.NoError(repository.Add("suicide"))

	// When the only phrase is removed
	err := repository.Remove("Suicide")

	// Then it is refused and kept
	req.ErrorIs(err, errors.ErrLastKeyword)
	phrases, err := repository.List()
	req.NoError(err)
	req.Equal([]string{"suicide"}, phrases)

	// And an unknown phrase is still a no-op
	req.NoError(repository.Remove("self harm"))
}

func TestKeywordRepository_Concurrent_Removals_Keep_One_Phrase(t *testing.T) {
	for i := 0; i < 20; i++ {
		req := require.New(t)
		repository := NewKeywordRepository(openTestDB(t), testLogger())
		req.NoError(repository.Add("suicide", "self harm"))

		// When both phrases are removed at the same time
		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for _, phrase := range []string{"suicide", "self harm"} {
			wg.Add(1)
			go func(phrase string) {
				defer wg.Done()
				errs <- repository.Remove(phrase)
			}(phrase)
		}
		wg.Wait()
		close(errs)

		// Then exactly one removal wins and one phrase survives
		var refused int
		for err := range errs {
			if err != nil {
				req.ErrorIs(err, errors.ErrLastKeyword)
				refused++
			}
		}
		req.Equal(1, refused)
		phrases, err := repository.List()
		req.NoError(err)
		req.Len(phrases, 1)
	}
}
