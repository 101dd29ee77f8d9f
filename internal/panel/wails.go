package panel

import (
	"context"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// WailsHost 基于 Wails runtime 的窗口宿主
//
// Wails v2 只有一个主窗口，并且 runtime 不提供可见性查询，
// 这里用显示/隐藏调用本身维护可见状态。启动时窗口为隐藏。
type WailsHost struct {
	label string

	mu      sync.Mutex
	ctx     context.Context
	visible bool
}

// NewWailsHost 创建宿主，label 为面板窗口标签
func NewWailsHost(label string) *WailsHost {
	return &WailsHost{label: label}
}

// Attach 在 Wails OnStartup 中调用，之后窗口才可用
func (h *WailsHost) Attach(ctx context.Context) {
	h.mu.Lock()
	h.ctx = ctx
	h.mu.Unlock()
}

// MarkHidden 窗口被系统关闭按钮隐藏时同步状态
func (h *WailsHost) MarkHidden() {
	h.mu.Lock()
	h.visible = false
	h.mu.Unlock()
}

// Window 实现 Host
func (h *WailsHost) Window(label string) (Window, error) {
	h.mu.Lock()
	ctx := h.ctx
	h.mu.Unlock()

	if ctx == nil || label != h.label {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, label)
	}
	return &wailsWindow{host: h, ctx: ctx}, nil
}

// Screens 实现 Host
func (h *WailsHost) Screens() ([]Screen, error) {
	h.mu.Lock()
	ctx := h.ctx
	h.mu.Unlock()

	if ctx == nil {
		return nil, fmt.Errorf("wails runtime not attached")
	}

	all, err := runtime.ScreenGetAll(ctx)
	if err != nil {
		return nil, err
	}

	screens := make([]Screen, 0, len(all))
	for _, s := range all {
		screens = append(screens, Screen{
			Width:     s.Size.Width,
			Height:    s.Size.Height,
			IsPrimary: s.IsPrimary,
			IsCurrent: s.IsCurrent,
		})
	}
	return screens, nil
}

type wailsWindow struct {
	host *WailsHost
	ctx  context.Context
}

func (w *wailsWindow) IsVisible() (bool, error) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	return w.host.visible, nil
}

func (w *wailsWindow) SetPosition(x, y int) error {
	runtime.WindowSetPosition(w.ctx, x, y)
	return nil
}

func (w *wailsWindow) Show() error {
	runtime.WindowShow(w.ctx)
	w.host.mu.Lock()
	w.host.visible = true
	w.host.mu.Unlock()
	return nil
}

func (w *wailsWindow) Hide() error {
	runtime.WindowHide(w.ctx)
	w.host.MarkHidden()
	return nil
}

func (w *wailsWindow) Emit(event string) error {
	runtime.EventsEmit(w.ctx, event)
	return nil
}
