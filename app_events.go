// app_events.go - Wails 事件发射
// 将 Go 后端状态变化通知到前端

package main

import (
	"menunote/internal/panel"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// 事件名称常量
const (
	EventPanelShown     = panel.EventShown
	EventConfigReloaded = "config:reloaded"
)

// emitConfigReloaded 通知前端配置已更新
func (a *App) emitConfigReloaded() {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, EventConfigReloaded)
}
