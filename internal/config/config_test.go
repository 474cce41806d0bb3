package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nomadcxx/anirename/internal/versioning"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api4.thetvdb.com/v4", cfg.TVDB.URL)
	assert.Equal(t, "eng", cfg.TVDB.Language)
	assert.Empty(t, cfg.TVDB.APIKey)
	assert.NotEmpty(t, cfg.Library.VideoExtensions)
	assert.Contains(t, cfg.Library.VideoExtensions, ".mkv")
	assert.Equal(t, "{series}.S{season:02}E{episode:02}.{title}", cfg.Naming.RegularTemplate)
	assert.Equal(t, "temporary", cfg.Options.Versioning)
	assert.True(t, cfg.Options.OperationLog)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().TVDB.URL, cfg.TVDB.URL)
	assert.Equal(t, "temporary", cfg.Options.Versioning)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[tvdb]
api_key = "abc123"

[options]
versioning = "direct"

[naming]
regular_template = "{series}.E{episode:03}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.TVDB.APIKey)
	assert.Equal(t, "direct", cfg.Options.Versioning)
	assert.Equal(t, "{series}.E{episode:03}", cfg.Naming.RegularTemplate)
	// untouched keys keep their defaults
	assert.Equal(t, "https://api4.thetvdb.com/v4", cfg.TVDB.URL)
	assert.Equal(t, "{series}.S00E{episode:02}.{title}", cfg.Naming.SpecialTemplate)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("ANIRENAME_TVDB_API_KEY", "from-env")
	t.Setenv("ANIRENAME_OPTIONS_DRY_RUN", "true")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.TVDB.APIKey)
	assert.True(t, cfg.Options.DryRun)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.TVDB.APIKey = "roundtrip-key"
	cfg.TVDB.PIN = "1234"
	cfg.Options.Versioning = "direct"
	cfg.Library.VideoExtensions = []string{".mkv", ".mp4"}
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "roundtrip-key", loaded.TVDB.APIKey)
	assert.Equal(t, "1234", loaded.TVDB.PIN)
	assert.Equal(t, "direct", loaded.Options.Versioning)
	assert.Equal(t, []string{".mkv", ".mp4"}, loaded.Library.VideoExtensions)
	assert.Equal(t, cfg.Naming.RegularTemplate, loaded.Naming.RegularTemplate)
	assert.Equal(t, cfg.Logging.MaxSizeMB, loaded.Logging.MaxSizeMB)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	bad := DefaultConfig()
	bad.Options.Versioning = "sometimes"
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Naming.RegularTemplate = "Season/{series}.E{episode}"
	assert.Error(t, bad.Validate(), "templates must not produce paths")

	bad = DefaultConfig()
	bad.Library.VideoExtensions = []string{"mkv"}
	assert.Error(t, bad.Validate(), "extensions must carry their dot")
}

func TestVersioningModeAndFormatter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Options.Versioning = "direct"
	assert.Equal(t, versioning.Direct, cfg.VersioningMode())

	name := cfg.Formatter().Format("Show", 1, 5, "Alpha", ".mkv")
	assert.Equal(t, "Show.S01E05.Alpha.mkv", name)
}
