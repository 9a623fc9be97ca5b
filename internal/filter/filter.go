// Package filter narrows a cached collection for display. Every function is
// pure: inputs are never modified and applying the same criteria twice gives
// the same result as applying it once.
package filter

import (
	"strings"

	"github.com/alexanderramin/capstonehub/internal/domain"
)

// All is the selection value meaning "no restriction".
const All = "all"

// Criteria selects records. Empty or All values impose no restriction.
type Criteria struct {
	// Search is matched case-insensitively as a substring of any of
	// SearchFields.
	Search       string
	SearchFields []string
	// Match maps a field name to the exact value it must hold.
	Match map[string]string
}

// IsEmpty reports whether c lets every record through.
func (c Criteria) IsEmpty() bool {
	if !isAll(c.Search) && len(c.SearchFields) > 0 {
		return false
	}
	for _, v := range c.Match {
		if !isAll(v) {
			return false
		}
	}
	return true
}

// Apply returns the records matching c, in their original order, in a new
// slice.
func Apply[T domain.Record](items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	needle := strings.ToLower(strings.TrimSpace(c.Search))
	for _, item := range items {
		if matches(item, c, needle) {
			out = append(out, item)
		}
	}
	return out
}

func matches[T domain.Record](item T, c Criteria, needle string) bool {
	for field, want := range c.Match {
		if isAll(want) {
			continue
		}
		if strings.TrimSpace(item.Field(field)) != strings.TrimSpace(want) {
			return false
		}
	}
	if needle == "" || needle == All || len(c.SearchFields) == 0 {
		return true
	}
	for _, field := range c.SearchFields {
		if strings.Contains(strings.ToLower(item.Field(field)), needle) {
			return true
		}
	}
	return false
}

// Partition groups items by the value of field, one group per key in keys
// (in that order). Items whose value is not among keys are left out.
func Partition[T domain.Record](items []T, field string, keys []string) map[string][]T {
	out := make(map[string][]T, len(keys))
	for _, k := range keys {
		out[k] = []T{}
	}
	for _, item := range items {
		v := item.Field(field)
		if group, ok := out[v]; ok {
			out[v] = append(group, item)
		}
	}
	return out
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}
