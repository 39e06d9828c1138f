package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/edgelight"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "#FF6200EE", cfg.Colors.Default)
	assert.Equal(t, 2*time.Second, cfg.Animation.Duration)
}

func TestParseOverlaysDefaults(t *testing.T) {
	data := []byte(`
animation:
  duration: 3500ms
  segments: "64"
colors:
  hash_fallback: false
  brands:
    - name: acme
      match: [acme, roadrunner]
      color: "#FF112233"
    - match: coyote,wile
      color: "#FF445566"
notifications:
  threshold: -1
  ignore: [com.example.self]
redis:
  addr: localhost:6379
log:
  level: debug
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	want := Default()
	want.Animation.Duration = 3500 * time.Millisecond
	want.Animation.Segments = 64
	want.Colors.HashFallback = false
	want.Colors.Brands = []Brand{
		{Name: "acme", Match: []string{"acme", "roadrunner"}, Color: "#FF112233"},
		{Match: []string{"coyote", "wile"}, Color: "#FF445566"},
	}
	want.Notifications = Notifications{Threshold: -1, Ignore: []string{"com.example.self"}}
	want.Redis.Addr = "localhost:6379"
	want.Log.Level = "debug"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "animation: [1, 2"},
		{"unknown key", "animation:\n  speed: 3\n"},
		{"bad duration", "animation:\n  duration: soon\n"},
		{"negative duration", "animation:\n  duration: -1s\n"},
		{"zero frame rate", "animation:\n  frame_rate: 0\n"},
		{"bad default color", "colors:\n  default: purple\n"},
		{"brand without match", "colors:\n  brands:\n    - color: \"#FF000000\"\n"},
		{"brand bad color", "colors:\n  brands:\n    - match: [a]\n      color: nope\n"},
		{"unknown table", "colors:\n  table: short\n"},
		{"negative size", "surface:\n  width: -4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edgelight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  addr: \":9090\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStyle(t *testing.T) {
	cfg := Default()
	assert.Equal(t, edgelight.DefaultStyle(), cfg.Style())
}

func TestResolverOptions(t *testing.T) {
	cfg, err := Parse([]byte(`
colors:
  default: "#FF123456"
  hash_fallback: false
  brands:
    - match: [whatsapp]
      color: "#FFABCDEF"
`))
	require.NoError(t, err)

	r := edgelight.NewResolver(cfg.ResolverOptions()...)
	assert.Equal(t, edgelight.ARGB(0xFFABCDEF), r.ResolvePrimaryColor(edgelight.Unset, nil, "com.whatsapp"))
	assert.Equal(t, edgelight.ARGB(0xFF0088CC), r.ResolvePrimaryColor(edgelight.Unset, nil, "org.telegram"))
	assert.Equal(t, edgelight.ARGB(0xFF123456), r.ResolvePrimaryColor(edgelight.Unset, nil, "org.unknown"))
}

func TestResolverOptionsHashFallback(t *testing.T) {
	r := edgelight.NewResolver(Default().ResolverOptions()...)
	got := r.Resolve(edgelight.Signals{Package: "org.unknown"})
	assert.Equal(t, edgelight.SourceHash, got.Source)
}

func TestResolverOptionsListenerTable(t *testing.T) {
	cfg, err := Parse([]byte(`
colors:
  table: listener
  hash_fallback: false
`))
	require.NoError(t, err)
	assert.Equal(t, TableListener, cfg.Colors.Table)

	r := edgelight.NewResolver(cfg.ResolverOptions()...)
	// calendar is only in the full table.
	assert.Equal(t, edgelight.DefaultPurple, r.ResolvePrimaryColor(edgelight.Unset, nil, "com.google.calendar"))
	assert.Equal(t, edgelight.ARGB(0xFF25D366), r.ResolvePrimaryColor(edgelight.Unset, nil, "com.whatsapp"))

	full := edgelight.NewResolver(Default().ResolverOptions()...)
	assert.Equal(t, edgelight.ARGB(0xFFFF9800), full.ResolvePrimaryColor(edgelight.Unset, nil, "com.google.calendar"))
}

func TestResolverOptionsListenerTableWithExtraBrands(t *testing.T) {
	cfg, err := Parse([]byte(`
colors:
  table: listener
  brands:
    - match: [calendar]
      color: "#FF010101"
`))
	require.NoError(t, err)
	r := edgelight.NewResolver(cfg.ResolverOptions()...)
	assert.Equal(t, edgelight.ARGB(0xFF010101), r.ResolvePrimaryColor(edgelight.Unset, nil, "com.google.calendar"))
}
