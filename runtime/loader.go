// Package runtime wires the long-running parts of the chat server: keyword
// bootstrap, participant registry and supervised workers.
package runtime

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"mood-chat/errors"
	"path"
	"sort"
	"strings"
)

//go:embed keywords/*
var keywordFolder embed.FS

// KeywordData carries the result of the loading process including metadata for logging.
type KeywordData struct {
	Phrases   []string
	Languages []string
}

// KeywordLoader reads crisis phrases from word files, one phrase per line.
type KeywordLoader struct {
	fs fs.FS
}

func NewKeywordLoader(f fs.FS) *KeywordLoader {
	return &KeywordLoader{fs: f}
}

// NewEmbeddedKeywordLoader reads the word files shipped with the binary.
func NewEmbeddedKeywordLoader() *KeywordLoader {
	return NewKeywordLoader(keywordFolder)
}

// LoadAll reads every .txt file of dir. The file name is the language ("fr.txt" -> "fr").
// Phrases are deduplicated across languages and returned sorted.
func (l *KeywordLoader) LoadAll(dir string) (*KeywordData, error) {
	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}

	var languages []string
	unique := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(l.fs, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		// ⚠️Don't use strings.Split, files may come with \r\n
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" && !strings.HasPrefix(line, "#") {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(unique) == 0 {
		return nil, errors.ErrEmptyWords
	}

	phrases := make([]string, 0, len(unique))
	for p := range unique {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)

	return &KeywordData{Phrases: phrases, Languages: languages}, nil
}
