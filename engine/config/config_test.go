package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/lunabridge/lunabridge/engine/consts"
)

const sampleConfig = `
[engine]
log_level = info
log_file = luna.log
log_stderr = false
max_fps = 30
max_frame_delta_ms = 100
frame_warn_ms = 40
http_port = 18080

[assets]
dir = data
manifest = manifest.bin
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	assert.Equal(t, nil, err)
	assert.Equal(t, "info", cfg.Engine.LogLevel)
	assert.Equal(t, "luna.log", cfg.Engine.LogFile)
	assert.Equal(t, false, cfg.Engine.LogStderr)
	assert.Equal(t, 30, cfg.Engine.MaxFPS)
	assert.Equal(t, 100*time.Millisecond, cfg.Engine.MaxFrameDelta)
	assert.Equal(t, 40*time.Millisecond, cfg.Engine.FrameWarnThreshold)
	assert.Equal(t, 18080, cfg.Engine.HTTPPort)
	assert.Equal(t, _DEFAULT_HTTP_IP, cfg.Engine.HTTPIp)
	assert.Equal(t, "data", cfg.Assets.Dir)
	assert.Equal(t, "manifest.bin", cfg.Assets.Manifest)
	assert.Equal(t, consts.APK_ASSETS_PREFIX, cfg.Assets.ApkPrefix)
	t.Logf("config: %s", DumpPretty(cfg))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[engine]\nframerate = 30\n"))
	assert.T(t, err != nil, "unknown key should fail")

	_, err = Parse([]byte("[render]\nvsync = true\n"))
	assert.T(t, err != nil, "unknown section should fail")

	_, err = Parse([]byte("[engine]\nmax_fps = 0\n"))
	assert.T(t, err != nil, "non-positive max_fps should fail")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Equal(t, nil, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, consts.MAX_FPS, cfg.Engine.MaxFPS)
}

func TestGetAndReload(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "luna.ini")
	assert.Equal(t, nil, os.WriteFile(file, []byte("[engine]\nmax_fps = 20\n"), 0644))
	SetConfigFile(file)
	defer SetConfigFile(_DEFAULT_CONFIG_FILE)

	assert.Equal(t, 20, GetEngine().MaxFPS)
	assert.Equal(t, dir+string(filepath.Separator), GetConfigDir())

	assert.Equal(t, nil, os.WriteFile(file, []byte("[engine]\nmax_fps = 25\n"), 0644))
	assert.Equal(t, 20, Get().Engine.MaxFPS)
	assert.Equal(t, 25, Reload().Engine.MaxFPS)
	assert.Equal(t, consts.ASSETS_DIR, GetAssets().Dir)
}
