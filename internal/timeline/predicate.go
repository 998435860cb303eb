package timeline

import "strings"

// Predicate selects records for anchor resolution and milestone matching.
type Predicate func(EventRecord) bool

// NameIs matches records whose name equals name exactly.
func NameIs(name string) Predicate {
	return func(r EventRecord) bool { return r.Name == name }
}

// NamePrefix matches records whose name starts with prefix.
func NamePrefix(prefix string) Predicate {
	return func(r EventRecord) bool { return strings.HasPrefix(r.Name, prefix) }
}

// NameSuffix matches records whose name ends with suffix.
func NameSuffix(suffix string) Predicate {
	return func(r EventRecord) bool { return strings.HasSuffix(r.Name, suffix) }
}

// InCategory matches records carrying the given category.
func InCategory(c Category) Predicate {
	return func(r EventRecord) bool { return r.Category == c }
}

// All matches records satisfying every given predicate.
func All(preds ...Predicate) Predicate {
	return func(r EventRecord) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
