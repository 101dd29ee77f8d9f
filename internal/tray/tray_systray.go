//go:build legacytray && !stub

package tray

import (
	"context"
	"sync"

	"github.com/getlantern/systray"
)

// systrayHandle 基于 getlantern/systray 的后端。
// 该库不提供图标点击回调，点击图标总是弹出菜单，只能通过菜单切换面板。
type systrayHandle struct {
	opts      Options
	quit      func()
	ctx       context.Context
	quitCh    chan struct{}
	once      sync.Once
	running   bool
	runningMu sync.Mutex
}

func (h *systrayHandle) Stop() {
	h.once.Do(func() {
		h.runningMu.Lock()
		running := h.running
		h.running = false
		h.runningMu.Unlock()

		// Quit 会回调 onExit，不能持锁调用
		if running {
			h.quit()
		}
		close(h.quitCh)
	})
}

func start(ctx context.Context, opts Options) (Handle, error) {
	// 先置位再启动，Stop 提前到来时也能调用 Quit
	h := &systrayHandle{
		opts:    opts,
		quit:    systray.Quit,
		ctx:     ctx,
		quitCh:  make(chan struct{}),
		running: true,
	}

	go systray.Run(h.onReady, h.onExit)

	return h, nil
}

func (h *systrayHandle) onReady() {
	if len(h.opts.Icon) > 0 {
		systray.SetTemplateIcon(h.opts.Icon, h.opts.Icon)
	}
	if h.opts.Tooltip != "" {
		systray.SetTooltip(h.opts.Tooltip)
	}

	labels := h.opts.Labels
	mShow := systray.AddMenuItem(labels.Show, labels.ShowTip)
	systray.AddSeparator()
	mQuit := systray.AddMenuItem(labels.Quit, labels.QuitTip)

	go func() {
		for {
			select {
			case <-h.quitCh:
				return
			case <-h.ctx.Done():
				return
			case <-mShow.ClickedCh:
				h.opts.menu(MenuShow)
			case <-mQuit.ClickedCh:
				h.opts.menu(MenuQuit)
			}
		}
	}()
}

func (h *systrayHandle) onExit() {}
