// Package logging 提供控制台 + 文件双输出的 slog 处理器
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ParseLevel 解析日志级别，未知值回退到 info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SimpleHandler 简化的日志处理器
// 输出格式: [时间] [PID:n] [LEVEL] message k=v ...
type SimpleHandler struct {
	level slog.Leveler
	out   *sink
	attrs []slog.Attr
	group string
}

// sink 由 WithAttrs/WithGroup 派生出的处理器共享
type sink struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
}

// NewSimpleHandler 创建处理器。filePath 为空时只输出到控制台
func NewSimpleHandler(level slog.Leveler, console io.Writer, filePath string) (*SimpleHandler, error) {
	h := &SimpleHandler{
		level: level,
		out:   &sink{console: console},
	}

	if filePath != "" {
		f, err := openLogFile(filePath)
		if err != nil {
			return nil, err
		}
		h.out.file = f
	}

	return h, nil
}

func (h *SimpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *SimpleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", h.qualify(a.Key), a.Value)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	line := fmt.Sprintf("[%s] [PID:%d] [%s] %s\n",
		ts.Format("2006-01-02 15:04:05.000"), os.Getpid(), levelName(r.Level), b.String())

	h.out.mu.Lock()
	defer h.out.mu.Unlock()

	if h.out.file != nil {
		if _, err := h.out.file.WriteString(line); err != nil {
			return err
		}
	}
	if h.out.console != nil {
		if _, err := io.WriteString(h.out.console, line); err != nil {
			return err
		}
	}
	return nil
}

func (h *SimpleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.qualify(a.Key), Value: a.Value})
	}
	return &clone
}

func (h *SimpleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}

func (h *SimpleHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// SetFile 切换日志文件，所有派生处理器随之生效。path 为空时关闭文件输出
// 新文件打开失败时保留原文件
func (h *SimpleHandler) SetFile(path string) error {
	var f *os.File
	if path != "" {
		var err error
		if f, err = openLogFile(path); err != nil {
			return err
		}
	}

	h.out.mu.Lock()
	old := h.out.file
	h.out.file = f
	h.out.mu.Unlock()

	if old != nil {
		_ = old.Sync()
		return old.Close()
	}
	return nil
}

// Close 关闭日志文件
func (h *SimpleHandler) Close() error {
	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	if h.out.file == nil {
		return nil
	}
	_ = h.out.file.Sync()
	err := h.out.file.Close()
	h.out.file = nil
	return err
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
