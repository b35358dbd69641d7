package service

import "strings"

// MatchesAssignee reports whether query is a case-insensitive substring of
// the stored assignee.
func MatchesAssignee(query, assignee string) bool {
	return strings.Contains(strings.ToLower(assignee), strings.ToLower(query))
}

// MatchesAssigner compares trimmed, lower-cased values and accepts a
// substring in either direction, so "rahul" finds "rahul@example.com" and
// "Rahul Sharma <rahul@example.com>" finds "rahul@example.com".
func MatchesAssigner(query, assigner string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	a := strings.ToLower(strings.TrimSpace(assigner))
	return strings.Contains(a, q) || strings.Contains(q, a)
}
