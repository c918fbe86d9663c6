package analyzer

import (
	"regexp"
	"strings"
)

// repoURLPattern extracts the first owner/repo pair from a GitHub URL. The
// character classes are deliberately loose — GitHub itself is the authority
// on what names exist, and a bogus pair simply 404s at fetch time.
var repoURLPattern = regexp.MustCompile(`https://github\.com/([^/]+)/([^/]+)`)

// ParseRepoURL extracts (owner, repo) from a GitHub repository URL.
//
// The match may appear anywhere in the input, so pasted text around the URL
// is tolerated. The repo component is trimmed of surrounding whitespace
// (trailing slashes never match the pattern in the first place). Returns
// ok=false when no match is found; callers treat that as a user input error.
func ParseRepoURL(s string) (owner, repo string, ok bool) {
	m := repoURLPattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}
