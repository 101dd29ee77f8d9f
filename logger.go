package main

import (
	"fmt"
	"log/slog"
	"os"

	"menunote/config"
	"menunote/internal/logging"
)

// setupLogger 配置结构化日志
// 控制台输出走 stderr，避免污染 note show 的标准输出
func setupLogger(cfg config.LoggingConfig) (*slog.Logger, *slog.LevelVar, *logging.SimpleHandler) {
	level := new(slog.LevelVar)
	level.Set(logging.ParseLevel(cfg.Level))

	handler, err := logging.NewSimpleHandler(level, os.Stderr, logFilePath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "警告：无法创建日志文件，仅输出到控制台: %v\n", err)
		handler, _ = logging.NewSimpleHandler(level, os.Stderr, "")
	}

	return slog.New(handler), level, handler
}

// logFilePath 返回实际写入的日志文件，未启用文件日志时为空
func logFilePath(cfg config.LoggingConfig) string {
	if !cfg.FileEnabled {
		return ""
	}
	return cfg.FilePath
}
