package listquery

import "strings"

// LikeEscape is appended to LIKE predicates built from ContainsPattern.
const LikeEscape = ` ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern lowercases value and wraps it for a case-insensitive substring
// match, escaping the LIKE wildcards it carries.
func ContainsPattern(value string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(value)) + "%"
}
