package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rovermap/config"
)

func TestDefault_Valid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	obs, emp, rt := cfg.Map.Marks()
	assert.Equal(t, byte('1'), obs)
	assert.Equal(t, byte('0'), emp)
	assert.Equal(t, byte('*'), rt)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantErr  bool
		validate func(*testing.T, config.Config)
	}{
		{
			name: "full config",
			yaml: `
map:
  width: 12
  height: 8
  obstacle: "#"
  empty: "."
  route: "o"
search:
  timeout: 250ms
preview:
  factor: 2
workspace:
  backend: badger
  dir: /var/lib/rover
metrics:
  addr: ":9100"
log:
  level: debug
`,
			validate: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, 12, cfg.Map.Width)
				assert.Equal(t, 8, cfg.Map.Height)
				assert.Equal(t, "#", cfg.Map.Obstacle)
				assert.Equal(t, 250*time.Millisecond, cfg.Search.Timeout)
				assert.Equal(t, 2, cfg.Preview.Factor)
				assert.Equal(t, config.BackendBadger, cfg.Workspace.Backend)
				assert.Equal(t, ":9100", cfg.Metrics.Addr)
				lvl, err := cfg.Log.SlogLevel()
				require.NoError(t, err)
				assert.Equal(t, slog.LevelDebug, lvl)
			},
		},
		{
			name: "partial config keeps defaults",
			yaml: "map:\n  width: 5\n",
			validate: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, 5, cfg.Map.Width)
				assert.Equal(t, 20, cfg.Map.Height)
				assert.Equal(t, "*", cfg.Map.Route)
				assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
				assert.Equal(t, config.BackendFile, cfg.Workspace.Backend)
			},
		},
		{name: "bad yaml", yaml: "map: [", wantErr: true},
		{name: "zero width", yaml: "map:\n  width: 0\n", wantErr: true},
		{name: "long mark", yaml: "map:\n  obstacle: \"##\"\n", wantErr: true},
		{name: "empty route mark", yaml: "map:\n  route: \"\"\n", wantErr: true},
		{name: "equal marks", yaml: "map:\n  obstacle: \"0\"\n", wantErr: true},
		{name: "route equals obstacle", yaml: "map:\n  route: \"1\"\n", wantErr: true},
		{name: "route equals empty", yaml: "map:\n  route: \"0\"\n", wantErr: true},
		{name: "negative timeout", yaml: "search:\n  timeout: -1s\n", wantErr: true},
		{name: "zero factor", yaml: "preview:\n  factor: 0\n", wantErr: true},
		{name: "unknown backend", yaml: "workspace:\n  backend: s3\n", wantErr: true},
		{name: "empty dir", yaml: "workspace:\n  dir: \"\"\n", wantErr: true},
		{name: "bad level", yaml: "log:\n  level: loud\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestParse_ValidationWrapsSentinel(t *testing.T) {
	_, err := config.Parse([]byte("preview:\n  factor: -3\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate_MarkOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Map.Obstacle = "##"
	cfg.Map.Empty = ""
	cfg.Map.Route = "\n"
	for i := 0; i < 20; i++ {
		err := cfg.Validate()
		require.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "map.obstacle")
	}

	cfg = config.Default()
	cfg.Map.Route = cfg.Map.Obstacle
	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "map.route")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte("map:\n  width: 3\n  height: 2\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	g, err := cfg.Map.NewGrid()
	require.NoError(t, err)
	assert.Equal(t, "000\n000", g.String())

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
