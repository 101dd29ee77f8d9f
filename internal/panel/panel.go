// Package panel 控制便签面板窗口的显示与隐藏
//
// 面板只有 Hidden / Visible 两种状态，状态由窗口宿主持有，这里只做查询和切换。
// 显示时把面板挪到主屏右上角、菜单栏下方，并发出 EventShown 让前端重新加载便签。
package panel

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// EventShown 面板显示后发往前端的事件名，无负载
const EventShown = "panel-shown"

// 默认锚点（逻辑像素）
const (
	DefaultRightMargin = 340
	DefaultTopOffset   = 30
)

var (
	// ErrHost 宿主查询屏幕/可见性或显示隐藏失败
	ErrHost = errors.New("host error")
	// ErrNotFound 宿主中找不到面板窗口
	ErrNotFound = errors.New("panel window not found")
)

// Screen 显示器信息，宽高为逻辑像素
type Screen struct {
	Width     int
	Height    int
	IsPrimary bool
	IsCurrent bool
}

// Window 宿主提供的面板窗口操作
type Window interface {
	IsVisible() (bool, error)
	SetPosition(x, y int) error
	// Show 显示窗口，不主动抢占输入焦点
	Show() error
	Hide() error
	Emit(event string) error
}

// Host 窗口宿主
type Host interface {
	// Window 按标签查找窗口，不存在时返回 ErrNotFound
	Window(label string) (Window, error)
	Screens() ([]Screen, error)
}

// Anchor 面板相对屏幕右上角的定位参数
type Anchor struct {
	RightMargin int
	TopOffset   int
}

// Position 计算面板在给定屏幕上的左上角坐标
func (a Anchor) Position(s Screen) (x, y int) {
	x = s.Width - a.RightMargin
	if x < 0 {
		x = 0
	}
	return x, a.TopOffset
}

// Toggler 面板切换器
type Toggler struct {
	host   Host
	label  string
	logger *slog.Logger

	mu     sync.RWMutex
	anchor Anchor
}

// NewToggler 创建面板切换器
func NewToggler(host Host, label string, anchor Anchor, logger *slog.Logger) *Toggler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Toggler{
		host:   host,
		label:  label,
		anchor: anchor,
		logger: logger,
	}
}

// SetAnchor 更新定位参数（配置热重载时调用）
func (t *Toggler) SetAnchor(a Anchor) {
	t.mu.Lock()
	t.anchor = a
	t.mu.Unlock()
}

// Anchor 返回当前定位参数
func (t *Toggler) Anchor() Anchor {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.anchor
}

// Toggle 切换面板显示状态
func (t *Toggler) Toggle() error {
	win, err := t.host.Window(t.label)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: failed to look up panel window: %w", ErrHost, err)
	}

	visible, err := win.IsVisible()
	if err != nil {
		return fmt.Errorf("%w: failed to query panel visibility: %w", ErrHost, err)
	}

	if visible {
		t.logger.Debug("🙈 面板可见，隐藏面板")
		if err := win.Hide(); err != nil {
			return fmt.Errorf("%w: failed to hide panel: %w", ErrHost, err)
		}
		return nil
	}

	t.logger.Debug("👀 面板隐藏，显示面板")
	t.placeWindow(win)

	if err := win.Show(); err != nil {
		return fmt.Errorf("%w: failed to show panel: %w", ErrHost, err)
	}

	if err := win.Emit(EventShown); err != nil {
		t.logger.Warn("⚠️ 面板显示事件发送失败", "error", err)
	}
	return nil
}

// placeWindow 定位失败只记录日志，不影响显示
func (t *Toggler) placeWindow(win Window) {
	screens, err := t.host.Screens()
	if err != nil {
		t.logger.Warn("⚠️ 无法获取屏幕信息，跳过定位", "error", err)
		return
	}

	screen, ok := pickScreen(screens)
	if !ok {
		t.logger.Warn("⚠️ 未检测到屏幕，跳过定位")
		return
	}

	x, y := t.Anchor().Position(screen)
	t.logger.Debug("📍 设置面板位置", "x", x, "y", y, "screen_width", screen.Width)
	if err := win.SetPosition(x, y); err != nil {
		t.logger.Warn("⚠️ 面板定位失败", "error", err)
	}
}

// pickScreen 优先主屏，其次当前屏，最后第一个
func pickScreen(screens []Screen) (Screen, bool) {
	if len(screens) == 0 {
		return Screen{}, false
	}
	for _, s := range screens {
		if s.IsPrimary {
			return s, true
		}
	}
	for _, s := range screens {
		if s.IsCurrent {
			return s, true
		}
	}
	return screens[0], true
}
