package tray

// Labels 托盘菜单文案
type Labels struct {
	Show    string
	ShowTip string
	Quit    string
	QuitTip string
}

var labelsByLanguage = map[string]Labels{
	"zh": {
		Show:    "显示/隐藏",
		ShowTip: "显示或隐藏便签面板",
		Quit:    "退出",
		QuitTip: "退出应用",
	},
	"en": {
		Show:    "Show/Hide",
		ShowTip: "Show or hide the note panel",
		Quit:    "Quit",
		QuitTip: "Quit the application",
	},
}

// LabelsFor 返回指定语言的菜单文案，未知语言回退到中文
func LabelsFor(lang string) Labels {
	if l, ok := labelsByLanguage[lang]; ok {
		return l
	}
	return labelsByLanguage["zh"]
}

// SupportedLanguage 判断是否有对应语言的文案
func SupportedLanguage(lang string) bool {
	_, ok := labelsByLanguage[lang]
	return ok
}
