//go:build !stub && !legacytray

package tray

import (
	"context"
	"sync"

	"github.com/energye/systray"
)

type energyeHandle struct {
	opts      Options
	quit      func()
	once      sync.Once
	running   bool
	runningMu sync.Mutex
}

func (h *energyeHandle) Stop() {
	h.once.Do(func() {
		h.runningMu.Lock()
		running := h.running
		h.running = false
		h.runningMu.Unlock()

		// Quit 可能同步回调 onExit，不能持锁调用
		if running {
			h.quit()
		}
	})
}

func start(_ context.Context, opts Options) (Handle, error) {
	h := newEnergyeHandle(opts)

	// systray.Run 会阻塞，在单独的 goroutine 中运行
	go systray.Run(h.onReady, h.onExit)

	return h, nil
}

// newEnergyeHandle 在启动 Run 之前置位 running，Stop 提前到来时也能调用 Quit
func newEnergyeHandle(opts Options) *energyeHandle {
	return &energyeHandle{opts: opts, quit: systray.Quit, running: true}
}

func (h *energyeHandle) onReady() {
	if len(h.opts.Icon) > 0 {
		systray.SetIcon(h.opts.Icon)
	}
	if h.opts.Tooltip != "" {
		systray.SetTooltip(h.opts.Tooltip)
	}

	// 左键直接切换面板，右键才弹出菜单
	systray.SetOnClick(func(menu systray.IMenu) {
		h.opts.click(ButtonLeft)
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		h.opts.click(ButtonRight)
		_ = menu.ShowMenu()
	})

	labels := h.opts.Labels
	mShow := systray.AddMenuItem(labels.Show, labels.ShowTip)
	systray.AddSeparator()
	mQuit := systray.AddMenuItem(labels.Quit, labels.QuitTip)

	mShow.Click(func() {
		h.opts.menu(MenuShow)
	})
	mQuit.Click(func() {
		h.opts.menu(MenuQuit)
	})
}

func (h *energyeHandle) onExit() {
	h.runningMu.Lock()
	h.running = false
	h.runningMu.Unlock()
}
