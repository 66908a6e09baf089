// Package redact scrubs secrets out of strings before they reach logs or
// error responses: bearer tokens, JWTs, bcrypt hashes, connection-string
// credentials, password fields and SQL fragments.
package redact

import "regexp"

// Placeholders substituted for redacted content.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedHashPlaceholder       = "[REDACTED_HASH]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order; earlier rules consume text so later, broader ones don't double-match.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)\b(bearer)\s+[A-Za-z0-9_\-.~+/=]+`),
		"$1 " + RedactedJWTPlaceholder,
	},
	{
		regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`),
		RedactedJWTPlaceholder,
	},
	{
		regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`),
		RedactedHashPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b((?:postgres(?:ql)?|mysql|redis|rediss|sqlite|mongodb)://)[^@\s/]+@`),
		"$1" + RedactedCredentialPlaceholder + "@",
	},
	{
		regexp.MustCompile(`(?i)("?(?:password|passwd|pwd|senha)"?\s*[=:]\s*"?)[^"&\s,}]+`),
		"$1" + RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)("?(?:secret|api[_-]?key|jwt[_-]?secret|access[_-]?token)"?\s*[=:]\s*"?)[^"&\s,}]{4,}`),
		"$1" + RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(SELECT|INSERT\s+INTO|UPDATE|DELETE\s+FROM)\b[^;\n]*`),
		RedactedSQLPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
