package ui

import (
	"errors"
	"sort"

	"infinite-experiment/crewcenter/internal/models"
)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
