// Package inifmt implements the line-oriented key-value text format used
// by story content files and save files. The grammar is deliberately
// permissive: a line either carries a [SECTION] header, a key=value pair,
// or nothing of interest. Malformed lines are never an error.
package inifmt

import "strings"

// ParseSection checks a line for a [SECTION] header and returns the
// trimmed text between the brackets. Callers enforce any TYPE:id
// convention inside the brackets themselves.
func ParseSection(line string) (string, bool) {
	start := strings.IndexByte(line, '[')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], ']')
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(line[start+1 : start+1+end]), true
}

// ParseKeyValue splits a key=value line on the first '=' and trims both
// sides. Blank lines, comments ('#' or ';') and lines without '=' report
// not-found. Values may themselves contain '='.
func ParseKeyValue(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';' {
		return "", "", false
	}

	eq := strings.IndexByte(trimmed, '=')
	if eq < 0 {
		return "", "", false
	}

	key = strings.TrimSpace(trimmed[:eq])
	value = strings.TrimSpace(trimmed[eq+1:])
	return key, value, true
}

// ParseBool reports whether a value is the literal "true". The narrow
// match is intentional: story files written against the original engine
// rely on anything else (including "True" and "1") reading as false.
func ParseBool(value string) bool {
	return value == "true"
}

// SplitList splits a comma-separated list field and trims each token.
// Empty tokens are dropped; duplicates are kept, the content is trusted.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
