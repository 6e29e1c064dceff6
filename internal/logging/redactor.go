package logging

import (
	"regexp"
	"strings"
)

var keySegments = regexp.MustCompile(`[^a-z0-9]+`)

// redactor blanks values whose key names a secret, e.g. "auth_token".
type redactor struct {
	sensitiveWords map[string]bool
}

func newRedactor() *redactor {
	words := []string{"secret", "password", "token", "key", "auth", "credential", "phone"}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &redactor{sensitiveWords: m}
}

// redact walks flattened key-value pairs and returns a copy with sensitive
// values replaced by "[REDACTED]".
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if ok && r.isSensitive(key) {
			result[i+1] = "[REDACTED]"
		}
	}
	return result
}

// isSensitive matches whole key segments only, so "monkey" is not a key.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range keySegments.Split(strings.ToLower(key), -1) {
		if r.sensitiveWords[part] {
			return true
		}
	}
	return false
}
