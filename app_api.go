// app_api.go - 绑定给前端的接口
// 错误在这里统一记录，前端收到的是 error 的文本

package main

// SaveNote 保存便签内容
func (a *App) SaveNote(content string) error {
	if err := a.notes.Save(content); err != nil {
		a.logger.Error("❌ 便签保存失败", "error", err)
		return err
	}
	return nil
}

// LoadNote 读取便签内容，首次运行返回空串
func (a *App) LoadNote() (string, error) {
	content, err := a.notes.Load()
	if err != nil {
		a.logger.Error("❌ 便签加载失败", "error", err)
		return "", err
	}
	return content, nil
}

// TogglePanel 切换面板显示状态
func (a *App) TogglePanel() error {
	if err := a.toggler.Toggle(); err != nil {
		a.logger.Error("❌ 面板切换失败", "error", err)
		return err
	}
	return nil
}
