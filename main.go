// main.go - MenuNote 入口
// 不带子命令时启动菜单栏托盘应用，note 子命令可在终端读写便签

package main

import (
	"embed"
	"fmt"
	"log/slog"
	"os"

	"menunote/config"
	"menunote/internal/logging"

	"github.com/spf13/cobra"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
)

// 版本信息
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// 嵌入前端资源
//
//go:embed all:frontend/dist
var assets embed.FS

// 嵌入托盘图标
//
//go:embed build/trayicon.png
var trayIcon []byte

// 嵌入默认配置文件
//
//go:embed config/config.yaml
var defaultConfigContent []byte

// 全局状态，由 PersistentPreRunE 初始化
var (
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	logLevel   *slog.LevelVar
	logHandler *logging.SimpleHandler
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menunote",
		Short: "Menu-bar sticky note",
		Long: `menunote keeps a single sticky note one click away in the menu bar.

Running menunote without a subcommand starts the tray app. Left-click the
tray icon to show or hide the note panel; right-click for the menu.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.DefaultConfigPath()
			}
			if err := config.EnsureConfigFile(configPath, defaultConfigContent); err != nil {
				return fmt.Errorf("failed to prepare config: %w", err)
			}

			var err error
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, logLevel, logHandler = setupLogger(cfg.Logging)
			slog.SetDefault(logger)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logHandler != nil {
				return logHandler.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: <app data dir>/config.yaml)")
	cmd.AddCommand(newNoteCmd())
	return cmd
}

// runApp 运行 Wails 托盘应用，阻塞直到退出
func runApp() error {
	app := NewApp(cfg, configPath, logger, logLevel, logHandler)

	return wails.Run(&options.App{
		Title:         cfg.App.Name,
		Width:         cfg.Panel.Width,
		Height:        cfg.Panel.Height,
		DisableResize: true,
		Frameless:     true,
		StartHidden:   true,
		AlwaysOnTop:   true,

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		BackgroundColour: &options.RGBA{R: 255, G: 249, B: 196, A: 255},

		OnStartup:     app.startup,
		OnDomReady:    app.domReady,
		OnBeforeClose: app.beforeClose,
		OnShutdown:    app.shutdown,

		Bind: []interface{}{
			app,
		},

		Mac: &mac.Options{
			TitleBar:             mac.TitleBarHidden(),
			WebviewIsTransparent: true,
			WindowIsTranslucent:  false,
			About: &mac.AboutInfo{
				Title:   cfg.App.Name,
				Message: fmt.Sprintf("菜单栏便签\n版本 %s", Version),
			},
		},
	})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
