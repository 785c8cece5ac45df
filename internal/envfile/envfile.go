// Package envfile reads the project .env file that Drupal projects use to hand
// database credentials and site settings to drush and Drupal Console.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

// Name is the file loaded from the project directory.
const Name = ".env"

// Load parses the file at path. A missing file yields no variables.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf(messages.EnvfileOpenFmt, path, err)
	}
	env, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf(messages.EnvfileInvalidFmt, path, err)
	}
	return env, nil
}

// Parse reads .env content into a key-value map. Later assignments win.
func Parse(content string) (map[string]string, error) {
	env := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if ok {
			env[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}
	return env, nil
}

// Environ returns base extended with vars. Variables already set in base keep
// their value, so the calling shell overrides the file.
func Environ(base []string, vars map[string]string) []string {
	set := make(map[string]bool, len(base))
	for _, kv := range base {
		if key, _, ok := strings.Cut(kv, "="); ok {
			set[key] = true
		}
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if !set[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := append([]string(nil), base...)
	for _, key := range keys {
		out = append(out, key+"="+vars[key])
	}
	return out
}

// parseLine returns the assignment on line, if any. Blank lines and comments yield ok=false.
func parseLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	key, value, found := strings.Cut(trimmed, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false, errors.New(messages.EnvfileExpectedKeyValue)
	}
	value = strings.TrimSpace(value)
	switch {
	case strings.HasPrefix(value, `"`):
		parsed, err := parseDoubleQuoted(value)
		if err != nil {
			return "", "", false, err
		}
		value = parsed
	case strings.HasPrefix(value, `'`):
		parsed, err := parseSingleQuoted(value)
		if err != nil {
			return "", "", false, err
		}
		value = parsed
	default:
		value = stripInlineComment(value)
	}
	return key, value, true, nil
}

func parseDoubleQuoted(value string) (string, error) {
	closing := -1
	escaped := false
	for i := 1; i < len(value) && closing < 0; i++ {
		switch {
		case escaped:
			escaped = false
		case value[i] == '\\':
			escaped = true
		case value[i] == '"':
			closing = i
		}
	}
	if closing < 0 {
		return "", errors.New(messages.EnvfileUnterminatedQuotedValue)
	}
	if err := checkSuffix(value[closing+1:]); err != nil {
		return "", err
	}
	return unescape(value[1:closing]), nil
}

func parseSingleQuoted(value string) (string, error) {
	end := strings.IndexByte(value[1:], '\'')
	if end < 0 {
		return "", errors.New(messages.EnvfileUnterminatedQuotedValue)
	}
	closing := end + 1
	if err := checkSuffix(value[closing+1:]); err != nil {
		return "", err
	}
	return value[1:closing], nil
}

// checkSuffix allows only whitespace and a comment after a quoted value.
func checkSuffix(suffix string) error {
	trimmed := strings.TrimSpace(suffix)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	return errors.New(messages.EnvfileInvalidQuotedSuffix)
}

// stripInlineComment drops a " #" comment from an unquoted value.
func stripInlineComment(value string) string {
	for i := 1; i < len(value); i++ {
		if value[i] == '#' && (value[i-1] == ' ' || value[i-1] == '\t') {
			return strings.TrimSpace(value[:i])
		}
	}
	return value
}

func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\', '"':
				b.WriteByte(s[i+1])
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 'r':
				b.WriteByte('\r')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
