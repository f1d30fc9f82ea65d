package service

import "strings"

// sanitizeEmail trims whitespace and lowercases so lookups and the unique
// index treat addresses case-insensitively.
func sanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sanitizeFullName trims and collapses internal whitespace runs to a
// single space.
func sanitizeFullName(fullName string) string {
	return strings.Join(strings.Fields(fullName), " ")
}
