package tray

import "context"

// Handle 表示已启动的托盘（用于停止托盘）。
type Handle interface {
	Stop()
}

// 菜单项 ID
const (
	MenuShow = "show"
	MenuQuit = "quit"
)

// Options 托盘启动参数。
type Options struct {
	// Icon 托盘图标内容（macOS 作为模板图标使用）。
	Icon []byte

	// Tooltip 托盘悬浮提示文本。
	Tooltip string

	// Labels 菜单文案。
	Labels Labels

	// OnClick 托盘图标被点击时触发。
	OnClick func(Button)

	// OnMenu 菜单项被选择时触发，参数为菜单项 ID。
	OnMenu func(id string)
}

// Start 启动系统托盘（平台相关实现）。
func Start(ctx context.Context, opts Options) (Handle, error) {
	return start(ctx, opts)
}

func (o Options) click(b Button) {
	if o.OnClick != nil {
		o.OnClick(b)
	}
}

func (o Options) menu(id string) {
	if o.OnMenu != nil {
		o.OnMenu(id)
	}
}
