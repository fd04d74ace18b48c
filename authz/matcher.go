package authz

import "strings"

// MatchPattern reports whether a "resource:action" permission pattern covers
// the required permission. "*" stands in for either half, so "product:*"
// covers every product action and "*:*" (or a bare "*") covers everything.
// Patterns without a ":" separator are compared as plain strings.
func MatchPattern(pattern, required string) bool {
	if pattern == required || pattern == "*" || pattern == "*:*" {
		return true
	}

	patRes, patAct, patOK := strings.Cut(pattern, ":")
	reqRes, reqAct, reqOK := strings.Cut(required, ":")
	if !patOK || !reqOK {
		// Mixed or plain forms fall back to whole-string comparison.
		return segmentMatch(pattern, required)
	}

	return segmentMatch(patRes, reqRes) && segmentMatch(patAct, reqAct)
}

// MatchAny reports whether any pattern in the list covers the required
// permission.
func MatchAny(patterns []string, required string) bool {
	for _, p := range patterns {
		if MatchPattern(p, required) {
			return true
		}
	}
	return false
}

func segmentMatch(pattern, value string) bool {
	return pattern == "*" || pattern == value
}
