// Package fieldlist tokenizes the comma-separated field lists clients send in
// orderBy and fields query parameters.
package fieldlist

import "strings"

// Names splits list on commas and returns the field name of every clause.
// Each clause is trimmed and cut at its first space, so "name desc" yields
// "name". Empty clauses are kept as empty names so validators can reject
// them. A blank list yields no names.
func Names(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}

	clauses := strings.Split(list, ",")
	names := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		names = append(names, Name(clause))
	}
	return names
}

// Name returns the field name of a single clause.
func Name(clause string) string {
	trimmed := strings.TrimSpace(clause)
	if i := strings.Index(trimmed, " "); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

// IsBlank reports whether list carries no clauses at all.
func IsBlank(list string) bool {
	return strings.TrimSpace(list) == ""
}
