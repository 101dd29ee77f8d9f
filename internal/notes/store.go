// Package notes 负责便签内容的本地持久化
// 便签只有一段纯文本，整文件读写，不做版本和并发写保护
package notes

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// DefaultFileName 默认便签文件名
const DefaultFileName = "note.txt"

// ErrIO 目录创建、文件读写失败或内容不是合法 UTF-8
var ErrIO = errors.New("note io error")

// Store 便签存储，目录在首次读写时创建
type Store struct {
	dir    string
	name   string
	logger *slog.Logger
}

// NewStore 创建便签存储。name 为空时使用 DefaultFileName
func NewStore(dir, name string, logger *slog.Logger) *Store {
	if name == "" {
		name = DefaultFileName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, name: name, logger: logger}
}

// Path 返回便签文件路径，同时确保所在目录存在
func (s *Store) Path() (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create app data dir: %w", ErrIO, err)
	}
	return filepath.Join(s.dir, s.name), nil
}

// Save 整体覆盖写入便签内容
func (s *Store) Save(content string) error {
	// 与 Load 保持一致，写入的内容必须能被读回
	if !utf8.ValidString(content) {
		return fmt.Errorf("%w: failed to save note: content is not valid UTF-8", ErrIO)
	}

	path, err := s.Path()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("%w: failed to save note: %w", ErrIO, err)
	}

	s.logger.Debug("💾 便签已保存",
		"path", path,
		"size", humanize.Bytes(uint64(len(content))))
	return nil
}

// Load 读取便签内容。文件不存在视为首次运行，返回空串
func (s *Store) Load() (string, error) {
	path, err := s.Path()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("📝 便签文件尚未创建", "path", path)
			return "", nil
		}
		return "", fmt.Errorf("%w: failed to load note: %w", ErrIO, err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: failed to load note: %s is not valid UTF-8", ErrIO, path)
	}

	s.logger.Debug("📖 便签已加载",
		"path", path,
		"size", humanize.Bytes(uint64(len(data))))
	return string(data), nil
}
