// app.go - Wails 应用核心结构
// 组装便签存储、面板切换和托盘控制器，并负责生命周期

package main

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"menunote/config"
	"menunote/internal/logging"
	"menunote/internal/notes"
	"menunote/internal/panel"
	"menunote/internal/tray"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App 是 Wails 应用的核心结构
// 导出方法（见 app_api.go）绑定给前端调用
type App struct {
	// Wails 上下文
	ctx context.Context

	config        *config.Config
	configPath    string
	configWatcher *config.ConfigWatcher
	logger        *slog.Logger
	logLevel      *slog.LevelVar
	logHandler    *logging.SimpleHandler

	notes   *notes.Store
	host    *panel.WailsHost
	panel   *panel.Toggler
	toggler tray.Toggler
	trayCtl *tray.Controller
	trayRun tray.Handle

	mu       sync.RWMutex
	quitting int32
}

// NewApp 创建新的应用实例
// handler 可为 nil，此时热重载不切换日志文件
func NewApp(cfg *config.Config, configPath string, logger *slog.Logger, level *slog.LevelVar, handler *logging.SimpleHandler) *App {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		config:     cfg,
		configPath: configPath,
		logger:     logger,
		logLevel:   level,
		logHandler: handler,
	}

	noteDir, err := cfg.NoteDir()
	if err != nil {
		logger.Warn("⚠️ 便签目录配置无效，使用应用数据目录", "error", err)
		noteDir = config.AppDataDir()
	}
	a.notes = notes.NewStore(noteDir, cfg.Storage.File, logger)

	a.host = panel.NewWailsHost(cfg.Panel.Label)
	a.panel = panel.NewToggler(a.host, cfg.Panel.Label, panelAnchor(cfg), logger)
	a.toggler = a.panel

	a.trayCtl = tray.NewController(a.toggler, a.quit,
		tray.WithDebounce(cfg.Tray.Debounce),
		tray.WithLogger(logger))

	return a
}

func panelAnchor(cfg *config.Config) panel.Anchor {
	return panel.Anchor{
		RightMargin: cfg.Panel.RightMargin,
		TopOffset:   cfg.Panel.TopOffset,
	}
}

// startup 在 Wails 应用启动时调用
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.host.Attach(ctx)

	a.logger.Info("🚀 MenuNote 启动中...",
		"version", Version,
		"config_file", a.configPath)

	a.setupTray()
	a.setupConfigReload()

	a.logger.Info("✅ MenuNote 启动完成")
}

// setupTray 启动托盘图标和菜单
func (a *App) setupTray() {
	cfg := a.currentConfig()

	handle, err := tray.Start(a.ctx, tray.Options{
		Icon:    trayIcon,
		Tooltip: cfg.Tray.Tooltip,
		Labels:  tray.LabelsFor(cfg.Tray.Language),
		OnClick: a.trayCtl.HandleClick,
		OnMenu:  a.trayCtl.HandleMenu,
	})
	if err != nil {
		a.logger.Error("❌ 托盘启动失败", "error", err)
		return
	}

	a.mu.Lock()
	a.trayRun = handle
	a.mu.Unlock()

	a.logger.Info("📌 托盘图标已创建")
}

// setupConfigReload 设置配置热重载
func (a *App) setupConfigReload() {
	if a.configPath == "" {
		return
	}

	watcher, err := config.NewConfigWatcher(a.configPath, a.logger)
	if err != nil {
		a.logger.Warn("⚠️ 配置热重载不可用", "error", err)
		return
	}
	watcher.AddReloadCallback(a.applyConfig)

	a.mu.Lock()
	a.configWatcher = watcher
	a.mu.Unlock()

	a.logger.Info("🔄 配置热重载已启用")
}

// applyConfig 应用可热更新的配置项
func (a *App) applyConfig(newCfg *config.Config) {
	a.mu.Lock()
	oldCfg := a.config
	a.config = newCfg
	a.mu.Unlock()

	if a.logLevel != nil {
		a.logLevel.Set(logging.ParseLevel(newCfg.Logging.Level))
	}
	a.applyLogFile(oldCfg.Logging, newCfg.Logging)
	a.trayCtl.SetDebounce(newCfg.Tray.Debounce)
	a.panel.SetAnchor(panelAnchor(newCfg))

	a.logger.Info("🔄 配置已重新加载")
	a.emitConfigReloaded()
}

// applyLogFile 日志文件开关或路径变化时切换输出文件
func (a *App) applyLogFile(oldCfg, newCfg config.LoggingConfig) {
	if a.logHandler == nil || logFilePath(oldCfg) == logFilePath(newCfg) {
		return
	}
	if err := a.logHandler.SetFile(logFilePath(newCfg)); err != nil {
		a.logger.Warn("⚠️ 日志文件切换失败，继续使用原文件", "error", err)
		return
	}
	a.logger.Info("📝 日志文件已切换", "file", logFilePath(newCfg))
}

func (a *App) currentConfig() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

// domReady 在前端 DOM 准备就绪时调用
func (a *App) domReady(ctx context.Context) {
	a.logger.Debug("前端已就绪")
}

// beforeClose 在窗口关闭前调用，返回 true 阻止关闭
// 托盘应用关闭面板只是隐藏，真正退出只走托盘菜单
func (a *App) beforeClose(ctx context.Context) bool {
	if atomic.LoadInt32(&a.quitting) == 1 {
		return false
	}

	runtime.WindowHide(ctx)
	a.host.MarkHidden()
	return true
}

// quit 退出应用，退出码 0
func (a *App) quit() {
	if !atomic.CompareAndSwapInt32(&a.quitting, 0, 1) {
		return
	}
	a.logger.Info("👋 正在退出 MenuNote...")

	if a.ctx == nil {
		return
	}
	// Quit 可能触发同步回调，不在托盘回调里阻塞
	go runtime.Quit(a.ctx)
}

// shutdown 在 Wails 应用关闭时调用
func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	trayRun := a.trayRun
	configWatcher := a.configWatcher
	a.trayRun = nil
	a.configWatcher = nil
	a.mu.Unlock()

	if trayRun != nil {
		trayRun.Stop()
	}
	if configWatcher != nil {
		_ = configWatcher.Close()
	}

	a.logger.Info("✅ MenuNote 已关闭")
}
