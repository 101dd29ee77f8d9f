package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"menunote/internal/notes"
	"menunote/internal/panel"
	"menunote/internal/tray"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// AppName 应用名，同时用作数据目录名
const AppName = "MenuNote"

type Config struct {
	App     AppConfig     `yaml:"app"`
	Storage StorageConfig `yaml:"storage"`
	Panel   PanelConfig   `yaml:"panel"`
	Tray    TrayConfig    `yaml:"tray"`
	Logging LoggingConfig `yaml:"logging"`
}

type AppConfig struct {
	Name string `yaml:"name"`
}

type StorageConfig struct {
	Dir  string `yaml:"dir"`  // Note directory, supports "~"; empty means the app data dir
	File string `yaml:"file"` // Note file name, default: note.txt
}

type PanelConfig struct {
	Label       string `yaml:"label"`        // Panel window label
	Width       int    `yaml:"width"`        // Panel width (logical px)
	Height      int    `yaml:"height"`       // Panel height (logical px)
	RightMargin int    `yaml:"right_margin"` // Distance from the screen's right edge to the panel's left edge
	TopOffset   int    `yaml:"top_offset"`   // Distance below the top of the screen (menu bar)
}

type TrayConfig struct {
	Debounce time.Duration `yaml:"debounce"` // Tray click debounce window, default: 300ms
	Language string        `yaml:"language"` // Menu language: "zh" or "en"
	Tooltip  string        `yaml:"tooltip"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`        // debug | info | warn | error
	FileEnabled bool   `yaml:"file_enabled"` // Enable file logging
	FilePath    string `yaml:"file_path"`    // Log file path, empty means <appdata>/logs/app.log
}

var supportedLanguages = map[string]bool{"zh": true, "en": true}

var supportedLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := baseConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.setDefaults()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	c := baseConfig()
	c.setDefaults()
	return &c
}

// baseConfig 预置 0 也合法的字段，yaml 中显式写出的值会覆盖它们
func baseConfig() Config {
	return Config{
		Panel: PanelConfig{
			RightMargin: panel.DefaultRightMargin,
			TopOffset:   panel.DefaultTopOffset,
		},
	}
}

// setDefaults sets default values for configuration
func (c *Config) setDefaults() {
	if c.App.Name == "" {
		c.App.Name = AppName
	}
	if c.Storage.File == "" {
		c.Storage.File = notes.DefaultFileName
	}
	if c.Panel.Label == "" {
		c.Panel.Label = "panel-window"
	}
	if c.Panel.Width == 0 {
		c.Panel.Width = 320
	}
	if c.Panel.Height == 0 {
		c.Panel.Height = 420
	}
	// 0 视为未配置
	if c.Tray.Debounce == 0 {
		c.Tray.Debounce = tray.DefaultDebounce
	}
	if c.Tray.Language == "" {
		c.Tray.Language = "zh"
	}
	if c.Tray.Tooltip == "" {
		c.Tray.Tooltip = c.App.Name
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.FileEnabled && c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join(AppDataDir(), "logs", "app.log")
	}
}

// validate checks configuration values
func (c *Config) validate() error {
	f := c.Storage.File
	if f == "." || f == ".." || filepath.Base(f) != f || strings.ContainsAny(f, `/\`) {
		return fmt.Errorf("storage.file must be a bare file name, got %q", f)
	}
	if c.Panel.Width < 0 || c.Panel.Height < 0 {
		return fmt.Errorf("panel size must be positive, got %dx%d", c.Panel.Width, c.Panel.Height)
	}
	if c.Panel.RightMargin < 0 || c.Panel.TopOffset < 0 {
		return errors.New("panel.right_margin and panel.top_offset must not be negative")
	}
	if c.Tray.Debounce < 0 {
		return fmt.Errorf("tray.debounce must not be negative, got %s", c.Tray.Debounce)
	}
	if !supportedLanguages[c.Tray.Language] {
		return fmt.Errorf("unsupported tray.language %q (want zh or en)", c.Tray.Language)
	}
	if !supportedLevels[c.Logging.Level] {
		return fmt.Errorf("unsupported logging.level %q", c.Logging.Level)
	}
	return nil
}

// NoteDir 返回便签目录，"~" 会展开为用户主目录
func (c *Config) NoteDir() (string, error) {
	dir := strings.TrimSpace(c.Storage.Dir)
	if dir == "" {
		return AppDataDir(), nil
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("failed to expand storage.dir %q: %w", dir, err)
	}
	return filepath.Clean(expanded), nil
}

// EnsureConfigFile 配置文件不存在时写入默认内容
func EnsureConfigFile(path string, defaultContent []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, defaultContent, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfigPath 默认配置文件路径
func DefaultConfigPath() string {
	return filepath.Join(AppDataDir(), "config.yaml")
}

// ConfigWatcher handles automatic configuration reloading
type ConfigWatcher struct {
	configPath    string
	config        *Config
	mutex         sync.RWMutex
	watcher       *fsnotify.Watcher
	logger        *slog.Logger
	callbacks     []func(*Config)
	lastModTime   time.Time
	debounceTimer *time.Timer
	delay         time.Duration
}

// NewConfigWatcher creates a new configuration watcher
func NewConfigWatcher(configPath string, logger *slog.Logger) (*ConfigWatcher, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	fileInfo, err := os.Stat(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	configPath = filepath.Clean(configPath)
	cw := &ConfigWatcher{
		configPath:  configPath,
		config:      config,
		watcher:     watcher,
		logger:      logger,
		callbacks:   make([]func(*Config), 0),
		lastModTime: fileInfo.ModTime(),
		delay:       500 * time.Millisecond,
	}

	// 监听所在目录而不是文件本身：编辑器原子保存（写临时文件再 rename）会替换 inode
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config dir: %w", err)
	}

	go cw.watchLoop()

	return cw, nil
}

// GetConfig returns the current configuration (thread-safe)
func (cw *ConfigWatcher) GetConfig() *Config {
	cw.mutex.RLock()
	defer cw.mutex.RUnlock()
	return cw.config
}

// AddReloadCallback adds a callback function that will be called when config is reloaded
func (cw *ConfigWatcher) AddReloadCallback(callback func(*Config)) {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

func (cw *ConfigWatcher) log() *slog.Logger {
	cw.mutex.RLock()
	defer cw.mutex.RUnlock()
	return cw.logger
}

// watchLoop monitors the config file for changes
func (cw *ConfigWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != cw.configPath {
				continue
			}
			// rename 覆盖到配置文件上时表现为 Create
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			fileInfo, err := os.Stat(cw.configPath)
			if err != nil {
				cw.log().Warn(fmt.Sprintf("⚠️ 无法获取配置文件信息: %v", err))
				continue
			}

			// 原地写入且修改时间未变则跳过；替换文件时 inode 已变，总是重新加载
			if !event.Has(fsnotify.Create) && fileInfo.ModTime().Equal(cw.lastModTime) {
				continue
			}
			cw.lastModTime = fileInfo.ModTime()

			cw.mutex.Lock()
			if cw.debounceTimer != nil {
				cw.debounceTimer.Stop()
			}
			// 编辑器保存时往往连续触发多次事件
			cw.debounceTimer = time.AfterFunc(cw.delay, func() {
				cw.log().Info(fmt.Sprintf("🔄 检测到配置文件变更，正在重新加载... - 文件: %s", cw.configPath))
				if err := cw.reloadConfig(); err != nil {
					cw.log().Error(fmt.Sprintf("❌ 配置文件重新加载失败: %v", err))
				} else {
					cw.log().Info("✅ 配置文件重新加载成功")
				}
			})
			cw.mutex.Unlock()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log().Error(fmt.Sprintf("⚠️ 配置文件监听错误: %v", err))
		}
	}
}

// reloadConfig reloads the configuration from file
func (cw *ConfigWatcher) reloadConfig() error {
	newConfig, err := LoadConfig(cw.configPath)
	if err != nil {
		return err
	}

	cw.mutex.Lock()
	oldConfig := cw.config
	cw.config = newConfig
	callbacks := make([]func(*Config), len(cw.callbacks))
	copy(callbacks, cw.callbacks)
	cw.mutex.Unlock()

	for _, callback := range callbacks {
		callback(newConfig)
	}

	cw.logConfigChanges(oldConfig, newConfig)

	return nil
}

// logConfigChanges logs the key differences between old and new configurations
func (cw *ConfigWatcher) logConfigChanges(oldConfig, newConfig *Config) {
	logger := cw.log()

	if oldConfig.Tray.Debounce != newConfig.Tray.Debounce {
		logger.Info("⏱️ 托盘防抖窗口变更",
			"old", oldConfig.Tray.Debounce,
			"new", newConfig.Tray.Debounce)
	}

	if oldConfig.Panel.RightMargin != newConfig.Panel.RightMargin ||
		oldConfig.Panel.TopOffset != newConfig.Panel.TopOffset {
		logger.Info("📍 面板定位变更",
			"old_right_margin", oldConfig.Panel.RightMargin,
			"new_right_margin", newConfig.Panel.RightMargin,
			"old_top_offset", oldConfig.Panel.TopOffset,
			"new_top_offset", newConfig.Panel.TopOffset)
	}

	if oldConfig.Logging.Level != newConfig.Logging.Level {
		logger.Info("📝 日志级别变更",
			"old_level", oldConfig.Logging.Level,
			"new_level", newConfig.Logging.Level)
	}

	if oldConfig.Storage != newConfig.Storage {
		logger.Warn("💾 存储配置变更需要重启后生效",
			"old_dir", oldConfig.Storage.Dir,
			"new_dir", newConfig.Storage.Dir)
	}

	if oldConfig.Tray.Language != newConfig.Tray.Language {
		logger.Warn("🌍 托盘语言变更需要重启后生效",
			"old_language", oldConfig.Tray.Language,
			"new_language", newConfig.Tray.Language)
	}
}

// Close stops the configuration watcher
func (cw *ConfigWatcher) Close() error {
	cw.mutex.Lock()
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.mutex.Unlock()
	return cw.watcher.Close()
}

// AppDataDir 获取应用数据目录（跨平台）
// Windows: %APPDATA%\MenuNote
// macOS: ~/Library/Application Support/MenuNote
// Linux: $XDG_DATA_HOME/menunote 或 ~/.local/share/menunote
func AppDataDir() string {
	homeDir, _ := homedir.Dir()

	switch runtime.GOOS {
	case "windows":
		baseDir := os.Getenv("APPDATA")
		if baseDir == "" {
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}
		return filepath.Join(baseDir, AppName)

	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", AppName)

	case "linux":
		if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
			return filepath.Join(xdgDataHome, strings.ToLower(AppName))
		}
		return filepath.Join(homeDir, ".local", "share", strings.ToLower(AppName))

	default:
		return filepath.Join(homeDir, "."+strings.ToLower(AppName))
	}
}
