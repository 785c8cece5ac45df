package envfile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/drupal-module-installer/internal/testutil"
)

func TestParse(t *testing.T) {
	content := strings.Join([]string{
		"# database",
		"MYSQL_DATABASE=drupal",
		"export MYSQL_HOSTNAME = db ",
		`MYSQL_PASSWORD="p@ss \"word\"" # quoted`,
		"MYSQL_USER='root #1'",
		"DRUSH_OPTIONS_URI=http://localhost # inline comment",
		"HASH_SALT=abc#def",
		"",
		"MYSQL_DATABASE=override",
	}, "\n")

	env, err := Parse(content)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"MYSQL_DATABASE":    "override",
		"MYSQL_HOSTNAME":    "db",
		"MYSQL_PASSWORD":    `p@ss "word"`,
		"MYSQL_USER":        "root #1",
		"DRUSH_OPTIONS_URI": "http://localhost",
		"HASH_SALT":         "abc#def",
	}, env)
}

func TestParseEmptyContent(t *testing.T) {
	env, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, env)
}

func TestParseEscapes(t *testing.T) {
	env, err := Parse(`KEY="a\nb\rc\\d"`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\rc\\d", env["KEY"])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "missing equals", content: "OK=1\nNOPE", want: "line 2"},
		{name: "empty key", content: "=value", want: "line 1"},
		{name: "unterminated double", content: `KEY="open`, want: "line 1"},
		{name: "unterminated single", content: `KEY='`, want: "line 1"},
		{name: "trailing text", content: `KEY="v" extra`, want: "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseOverlongLine(t *testing.T) {
	_, err := Parse("KEY=" + strings.Repeat("x", 70*1024))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	env, err := Load(filepath.Join(dir, Name))
	require.NoError(t, err)
	assert.Empty(t, env)

	path := testutil.WriteFile(t, dir, Name, "MYSQL_DATABASE=drupal\n")
	env, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "drupal", env["MYSQL_DATABASE"])

	bad := testutil.WriteFile(t, dir, "bad.env", "broken\n")
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestEnviron(t *testing.T) {
	base := []string{"PATH=/usr/bin", "MYSQL_USER=shell"}
	got := Environ(base, map[string]string{"MYSQL_USER": "file", "B": "2", "A": "1"})
	assert.Equal(t, []string{"PATH=/usr/bin", "MYSQL_USER=shell", "A=1", "B=2"}, got)
	assert.Equal(t, []string{"PATH=/usr/bin", "MYSQL_USER=shell"}, base)
}
