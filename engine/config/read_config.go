package config

import (
	"encoding/json"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/go-ini/ini"
	"github.com/lunabridge/lunabridge/engine/consts"
	"github.com/lunabridge/lunabridge/engine/lblog"
	"github.com/pkg/errors"
)

const (
	_DEFAULT_CONFIG_FILE = "luna.ini"
	_DEFAULT_LOG_LEVEL   = "debug"
	_DEFAULT_HTTP_IP     = "127.0.0.1"
)

var (
	configFilePath = _DEFAULT_CONFIG_FILE
	lunaConfig     *LunaConfig
	configLock     sync.Mutex
)

// EngineConfig defines fields of the [engine] section
type EngineConfig struct {
	LogFile            string
	LogStderr          bool
	LogLevel           string
	MaxFPS             int
	MaxFrameDelta      time.Duration
	FrameWarnThreshold time.Duration
	HTTPIp             string
	HTTPPort           int
}

// AssetsConfig defines fields of the [assets] section
type AssetsConfig struct {
	Dir        string // asset directory relative to the app folder
	ApkPrefix  string // prefix of asset entries inside the apk
	Manifest   string // manifest file name inside the cache directory
	AsyncGroup string // async group used by background reloads
}

// LunaConfig defines the total config file structure
type LunaConfig struct {
	Engine EngineConfig
	Assets AssetsConfig
}

// SetConfigFile sets the config file path (luna.ini by default)
func SetConfigFile(f string) {
	configLock.Lock()
	configFilePath = f
	lunaConfig = nil
	configLock.Unlock()
}

// GetConfigDir returns the directory of luna.ini
func GetConfigDir() string {
	dir, _ := path.Split(GetConfigFilePath())
	return dir
}

// GetConfigFilePath returns the config file path
func GetConfigFilePath() string {
	configLock.Lock()
	defer configLock.Unlock()
	return configFilePath
}

// Get returns the total config, reading the config file on first use
func Get() *LunaConfig {
	configLock.Lock()
	defer configLock.Unlock()
	if lunaConfig == nil {
		cfg, err := Load(configFilePath)
		checkConfigError(err, "")
		lunaConfig = cfg
	}
	return lunaConfig
}

// Reload forces the config to be read again
func Reload() *LunaConfig {
	configLock.Lock()
	lunaConfig = nil
	configLock.Unlock()

	return Get()
}

// GetEngine returns the engine config
func GetEngine() *EngineConfig {
	return &Get().Engine
}

// GetAssets returns the assets config
func GetAssets() *AssetsConfig {
	return &Get().Assets
}

// Default returns the config used when no config file exists
func Default() *LunaConfig {
	cfg := &LunaConfig{}
	setEngineDefaults(&cfg.Engine)
	setAssetsDefaults(&cfg.Assets)
	return cfg
}

// Load reads the config file at filePath. A missing file yields the defaults.
func Load(filePath string) (*LunaConfig, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		lblog.Infof("Config file %s not found, using defaults", filePath)
		return Default(), nil
	}
	lblog.Infof("Using config file: %s", filePath)
	return parse(filePath)
}

// Parse reads config from ini formatted data
func Parse(data []byte) (*LunaConfig, error) {
	return parse(data)
}

func parse(source interface{}) (*LunaConfig, error) {
	iniFile, err := ini.Load(source)
	if err != nil {
		return nil, errors.Wrap(err, "load ini")
	}

	cfg := Default()
	for _, sec := range iniFile.Sections() {
		secName := strings.ToLower(sec.Name())
		if secName == "default" {
			if len(sec.Keys()) > 0 {
				return nil, errors.Errorf("keys outside of any section: %v", sec.KeyStrings())
			}
			continue
		}

		switch secName {
		case "engine":
			err = readEngineConfig(sec, &cfg.Engine)
		case "assets":
			err = readAssetsConfig(sec, &cfg.Assets)
		default:
			err = errors.Errorf("unknown section: %s", sec.Name())
		}
		if err != nil {
			return nil, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setEngineDefaults(ec *EngineConfig) {
	ec.LogFile = ""
	ec.LogStderr = true
	ec.LogLevel = _DEFAULT_LOG_LEVEL
	ec.MaxFPS = consts.MAX_FPS
	ec.MaxFrameDelta = consts.MAX_FRAME_DELTA
	ec.FrameWarnThreshold = consts.FRAME_WARN_THRESHOLD
	ec.HTTPIp = _DEFAULT_HTTP_IP
	ec.HTTPPort = 0 // pprof not enabled by default
}

func setAssetsDefaults(ac *AssetsConfig) {
	ac.Dir = consts.ASSETS_DIR
	ac.ApkPrefix = consts.APK_ASSETS_PREFIX
	ac.Manifest = consts.ASSETS_MANIFEST_FILE
	ac.AsyncGroup = consts.ASSETS_ASYNC_GROUP
}

func readEngineConfig(sec *ini.Section, ec *EngineConfig) error {
	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "log_file" {
			ec.LogFile = key.MustString(ec.LogFile)
		} else if name == "log_stderr" {
			ec.LogStderr = key.MustBool(ec.LogStderr)
		} else if name == "log_level" {
			ec.LogLevel = key.MustString(ec.LogLevel)
		} else if name == "max_fps" {
			ec.MaxFPS = key.MustInt(ec.MaxFPS)
		} else if name == "max_frame_delta_ms" {
			ec.MaxFrameDelta = time.Millisecond * time.Duration(key.MustInt(int(ec.MaxFrameDelta/time.Millisecond)))
		} else if name == "frame_warn_ms" {
			ec.FrameWarnThreshold = time.Millisecond * time.Duration(key.MustInt(int(ec.FrameWarnThreshold/time.Millisecond)))
		} else if name == "http_ip" {
			ec.HTTPIp = key.MustString(ec.HTTPIp)
		} else if name == "http_port" {
			ec.HTTPPort = key.MustInt(ec.HTTPPort)
		} else {
			return errors.Errorf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
	return nil
}

func readAssetsConfig(sec *ini.Section, ac *AssetsConfig) error {
	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "dir" {
			ac.Dir = key.MustString(ac.Dir)
		} else if name == "apk_prefix" {
			ac.ApkPrefix = key.MustString(ac.ApkPrefix)
		} else if name == "manifest" {
			ac.Manifest = key.MustString(ac.Manifest)
		} else if name == "async_reload_group" {
			ac.AsyncGroup = key.MustString(ac.AsyncGroup)
		} else {
			return errors.Errorf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
	return nil
}

func validateConfig(cfg *LunaConfig) error {
	if cfg.Engine.MaxFPS <= 0 {
		return errors.Errorf("max_fps must be positive, got %d", cfg.Engine.MaxFPS)
	}
	if cfg.Engine.MaxFrameDelta <= 0 {
		return errors.Errorf("max_frame_delta_ms must be positive")
	}
	if cfg.Assets.Dir == "" {
		return errors.New("assets dir is not set")
	}
	if cfg.Assets.AsyncGroup == "" {
		return errors.New("async_reload_group is not set")
	}
	return nil
}

// DumpPretty format config to string in pretty format
func DumpPretty(cfg interface{}) string {
	s, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err.Error()
	}
	return string(s)
}

func checkConfigError(err error, msg string) {
	if err != nil {
		if msg == "" {
			msg = err.Error()
		}
		lblog.Panicf("read config error: %s", msg)
	}
}
