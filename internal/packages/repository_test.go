package packages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInstalled(t *testing.T, vendorDir string, content string) {
	t.Helper()
	path := InstalledPath(vendorDir)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadLocalComposer2(t *testing.T) {
	vendor := filepath.Join(t.TempDir(), "vendor")
	writeInstalled(t, vendor, `{
  "packages": [
    {"name": "drush/drush", "type": "library", "bin": ["drush"], "install-path": "../drush/drush"},
    {"name": "drupal/token", "type": "drupal-module", "install-path": "../../web/modules/contrib/token"}
  ],
  "dev": true
}`)

	repo, err := LoadLocal(vendor)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Len())

	drush, ok := repo.FindPackage("Drush/Drush")
	require.True(t, ok)
	assert.True(t, drush.HasBinary("drush"))
	assert.False(t, drush.HasBinary("drupal"))
	assert.Equal(t, filepath.Join(vendor, "drush", "drush"), drush.InstallPath)

	token, ok := repo.FindPackage("drupal/token")
	require.True(t, ok)
	assert.Equal(t, TypeDrupalModule, token.Type)
	assert.Equal(t, filepath.Join(filepath.Dir(vendor), "web", "modules", "contrib", "token"), token.InstallPath)
}

func TestLoadLocalComposer1List(t *testing.T) {
	vendor := filepath.Join(t.TempDir(), "vendor")
	writeInstalled(t, vendor, `[{"name": "drupal/console", "type": "library", "bin": ["bin/drupal"]}]`)

	repo, err := LoadLocal(vendor)
	require.NoError(t, err)
	console, ok := repo.FindPackage("drupal/console")
	require.True(t, ok)
	assert.True(t, console.HasBinary("drupal"))
	assert.Empty(t, console.InstallPath)
}

func TestLoadLocalMissingFileIsEmpty(t *testing.T) {
	repo, err := LoadLocal(filepath.Join(t.TempDir(), "vendor"))
	require.NoError(t, err)
	assert.Equal(t, 0, repo.Len())
	_, ok := repo.FindPackage("drush/drush")
	assert.False(t, ok)
}

func TestLoadLocalInvalidJSON(t *testing.T) {
	vendor := filepath.Join(t.TempDir(), "vendor")
	writeInstalled(t, vendor, `{"packages": [`)

	_, err := LoadLocal(vendor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "installed.json")
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "foo", Package{Name: "vendor/foo"}.ShortName())
	assert.Equal(t, "foo", Package{Name: "foo"}.ShortName())
	assert.Equal(t, "foo", Package{Name: "vendor/foo/"}.ShortName())
}

func TestNilLocal(t *testing.T) {
	var repo *Local
	_, ok := repo.FindPackage("x")
	assert.False(t, ok)
	assert.Equal(t, 0, repo.Len())
}
