package repository

import "strings"

// EscapeLike escapes the pattern metacharacters of the SQL LIKE
// operator so user input matches literally. A search for "50%" must
// match the substring "50%", not "5", "0" and anything after.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// orderClause builds an ORDER BY fragment from a caller-supplied sort
// field and direction. The field must be in the allowed set because it
// is interpolated into the SQL text; unknown fields fall back to the
// default. The literal field "random" yields a non-deterministic order
// and ignores the direction.
func orderClause(field, dir, def string, allowed map[string]bool) string {
	if field == "random" {
		return " ORDER BY RAND()"
	}
	if !allowed[field] {
		field = def
	}
	if strings.EqualFold(dir, "desc") {
		return " ORDER BY " + field + " DESC"
	}
	return " ORDER BY " + field + " ASC"
}
