package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"menunote/config"
	"menunote/internal/logging"
	"menunote/internal/notes"
	"menunote/internal/panel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubToggler struct {
	calls int
	err   error
}

func (s *stubToggler) Toggle() error {
	s.calls++
	return s.err
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.Dir = t.TempDir()

	level := new(slog.LevelVar)
	handler, err := logging.NewSimpleHandler(level, nil, "")
	require.NoError(t, err)
	t.Cleanup(func() { handler.Close() })
	return NewApp(cfg, "", slog.New(handler), level, handler)
}

func TestApp_SaveLoadNote(t *testing.T) {
	app := newTestApp(t)

	content, err := app.LoadNote()
	require.NoError(t, err)
	assert.Equal(t, "", content)

	require.NoError(t, app.SaveNote("第一行\nsecond line 🎉"))

	content, err = app.LoadNote()
	require.NoError(t, err)
	assert.Equal(t, "第一行\nsecond line 🎉", content)

	data, err := os.ReadFile(filepath.Join(app.currentConfig().Storage.Dir, "note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "第一行\nsecond line 🎉", string(data))
}

func TestApp_SaveNoteErrorIsReadable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	app := newTestApp(t)
	app.notes = notes.NewStore(filepath.Join(blocker, "sub"), "", slog.Default())

	err := app.SaveNote("hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, notes.ErrIO)
	assert.Contains(t, err.Error(), "failed to create app data dir")
}

func TestApp_TogglePanel(t *testing.T) {
	app := newTestApp(t)
	stub := &stubToggler{}
	app.toggler = stub

	require.NoError(t, app.TogglePanel())
	assert.Equal(t, 1, stub.calls)

	stub.err = errors.New("boom")
	assert.EqualError(t, app.TogglePanel(), "boom")
}

func TestApp_TogglePanelBeforeStartup(t *testing.T) {
	app := newTestApp(t)

	err := app.TogglePanel()
	require.Error(t, err)
	assert.ErrorIs(t, err, panel.ErrNotFound)
}

func TestApp_ApplyConfig(t *testing.T) {
	app := newTestApp(t)

	newCfg := config.Default()
	newCfg.Tray.Debounce = time.Second
	newCfg.Panel.RightMargin = 500
	newCfg.Panel.TopOffset = 44
	newCfg.Logging.Level = "debug"

	app.applyConfig(newCfg)

	assert.Equal(t, time.Second, app.trayCtl.Debounce())
	assert.Equal(t, panel.Anchor{RightMargin: 500, TopOffset: 44}, app.panel.Anchor())
	assert.Equal(t, slog.LevelDebug, app.logLevel.Level())
	assert.Same(t, newCfg, app.currentConfig())
}

func TestApp_ApplyConfigSwitchesLogFile(t *testing.T) {
	app := newTestApp(t)
	logPath := filepath.Join(t.TempDir(), "logs", "app.log")

	newCfg := config.Default()
	newCfg.Logging.FileEnabled = true
	newCfg.Logging.FilePath = logPath
	app.applyConfig(newCfg)

	app.logger.Info("after reload")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "after reload")

	// 关闭文件日志后不再写入
	off := config.Default()
	app.applyConfig(off)
	app.logger.Info("console only")
	data, err = os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "console only")
}

func TestApp_QuitIsIdempotentWithoutRuntime(t *testing.T) {
	app := newTestApp(t)

	app.quit()
	app.quit()
	assert.Equal(t, int32(1), app.quitting)
}
