// Package tray 托盘图标、菜单及其事件分发
package tray

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultDebounce 托盘点击防抖窗口
const DefaultDebounce = 300 * time.Millisecond

// Button 鼠标按键
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// Toggler 面板切换
type Toggler interface {
	Toggle() error
}

// Controller 托盘事件控制器
//
// 持有上次被接受的点击时间。左键点击距上次不足防抖窗口时丢弃；
// 菜单「显示/隐藏」不经过防抖。
type Controller struct {
	toggler Toggler
	quit    func()
	now     func() time.Time
	logger  *slog.Logger

	mu        sync.Mutex
	lastClick time.Time
	debounce  time.Duration
}

// ControllerOption 控制器选项
type ControllerOption func(*Controller)

// WithClock 注入时钟，便于测试
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.now = now
	}
}

// WithDebounce 设置防抖窗口
func WithDebounce(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.debounce = d
	}
}

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController 创建控制器，上次点击时间初始化为当前时间
func NewController(toggler Toggler, quit func(), opts ...ControllerOption) *Controller {
	c := &Controller{
		toggler:  toggler,
		quit:     quit,
		now:      time.Now,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastClick = c.now()
	return c
}

// SetDebounce 运行时调整防抖窗口
func (c *Controller) SetDebounce(d time.Duration) {
	c.mu.Lock()
	c.debounce = d
	c.mu.Unlock()
}

// Debounce 返回当前防抖窗口
func (c *Controller) Debounce() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.debounce
}

// HandleClick 处理托盘图标点击，只有左键会切换面板
func (c *Controller) HandleClick(b Button) {
	if b != ButtonLeft {
		c.logger.Debug("托盘非左键点击，忽略", "button", b)
		return
	}

	if !c.acceptClick() {
		c.logger.Debug("⏱️ 托盘点击被防抖忽略")
		return
	}

	c.logger.Debug("🖱️ 托盘图标点击", "button", b)
	c.toggle()
}

// HandleMenu 处理菜单选择
func (c *Controller) HandleMenu(id string) {
	switch id {
	case MenuQuit:
		c.logger.Info("👋 退出菜单被点击")
		if c.quit != nil {
			c.quit()
		}
	case MenuShow:
		c.logger.Debug("显示/隐藏菜单被点击")
		c.toggle()
	default:
		c.logger.Debug("未知菜单项，忽略", "id", id)
	}
}

// acceptClick 比较并更新上次点击时间
func (c *Controller) acceptClick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastClick) < c.debounce {
		return false
	}
	c.lastClick = now
	return true
}

func (c *Controller) toggle() {
	if err := c.toggler.Toggle(); err != nil {
		c.logger.Error("❌ 面板切换失败", "error", err)
	}
}
