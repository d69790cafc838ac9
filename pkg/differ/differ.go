package differ

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wonderfulspam/config-drift/pkg/extractor"
)

type Kind string

const (
	KindAdded   Kind = "added"
	KindRemoved Kind = "removed"
	KindChanged Kind = "changed"
)

// Entry is one reported difference. Added entries carry only NewValue,
// Removed entries only OldValue, Changed entries both.
type Entry struct {
	Kind     Kind        `json:"kind"`
	Key      string      `json:"key"`
	OldValue interface{} `json:"old_value,omitempty"`
	NewValue interface{} `json:"new_value,omitempty"`
}

// Compare classifies every key of the two mappings as added, removed or
// changed. Unchanged keys are never materialized. Output order is Added,
// then Removed, then Changed, keys sorted lexicographically within each
// group, so reports are reproducible regardless of map iteration order.
func Compare(base, head extractor.Settings) []Entry {
	var added, removed, changed []Entry

	for key, newValue := range head {
		oldValue, inBase := base[key]
		if !inBase {
			added = append(added, Entry{Kind: KindAdded, Key: key, NewValue: newValue})
			continue
		}
		if !Equal(oldValue, newValue) {
			changed = append(changed, Entry{Kind: KindChanged, Key: key, OldValue: oldValue, NewValue: newValue})
		}
	}

	for key, oldValue := range base {
		if _, inHead := head[key]; !inHead {
			removed = append(removed, Entry{Kind: KindRemoved, Key: key, OldValue: oldValue})
		}
	}

	sortByKey(added)
	sortByKey(removed)
	sortByKey(changed)

	entries := make([]Entry, 0, len(added)+len(removed)+len(changed))
	entries = append(entries, added...)
	entries = append(entries, removed...)
	entries = append(entries, changed...)

	return entries
}

func sortByKey(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
}

// Equal reports deep structural equality of two decoded JSON values.
// Objects compare member-wise ignoring member order, arrays element-wise
// and order-sensitive, primitives by exact value and type. The recursion
// is explicit rather than reflect.DeepEqual so that equality semantics
// stay pinned to the JSON data model.
func Equal(a, b interface{}) bool {
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for key, aval := range av {
			bval, present := bv[key]
			if !present || !Equal(aval, bval) {
				return false
			}
		}
		return true
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return false
	}
}

// Summary produces a one-line description of a diff result, e.g.
// "2 added, 1 removed, 3 changed".
func Summary(entries []Entry) string {
	if len(entries) == 0 {
		return "no settings changed"
	}

	counts := map[Kind]int{}
	for _, entry := range entries {
		counts[entry.Kind]++
	}

	parts := []string{}
	for _, kind := range []Kind{KindAdded, KindRemoved, KindChanged} {
		if counts[kind] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[kind], kind))
		}
	}

	return strings.Join(parts, ", ")
}
