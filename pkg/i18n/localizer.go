package i18n

import (
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var messages = map[string]map[string]string{
	ERROR_INTERNAL:          {"en": "Something went wrong, please try again later", "zh-CN": "服务内部错误，请稍后再试"},
	ERROR_NOTFOUND:          {"en": "Not found", "zh-CN": "内容不存在"},
	ERROR_INVALIDARGUMENT:   {"en": "Invalid request arguments", "zh-CN": "请求参数有误"},
	ERROR_PERMISSION_DENIED: {"en": "Permission denied", "zh-CN": "没有操作权限"},
	ERROR_UNAUTHORIZED:      {"en": "Please sign in first", "zh-CN": "请先登录"},
	ERROR_EXIST:             {"en": "Already exists", "zh-CN": "内容已存在"},
	ERROR_TOO_MANY_REQUESTS: {"en": "Too many requests", "zh-CN": "请求过于频繁"},

	ERROR_INVALID_TOKEN:          {"en": "Invalid session token", "zh-CN": "无效的登录凭证"},
	ERROR_INVALID_ACCOUNT:        {"en": "Incorrect email or password", "zh-CN": "账号或密码错误"},
	ERROR_EMAIL_ALREADY_REGISTED: {"en": "This email is already registered", "zh-CN": "该邮箱已被注册"},

	ERROR_INVALID_INVITE_CODE:    {"en": "Invalid invite code", "zh-CN": "邀请码无效"},
	ERROR_SPACE_LOCKED:           {"en": "Collect 50 stars to unlock space creation", "zh-CN": "收集 50 颗星后即可创建空间"},
	ERROR_SELF_STAR:              {"en": "You cannot star your own note", "zh-CN": "不能为自己的留言加星"},
	ERROR_VISIBILITY_SPACE_BOUND: {"en": "Space visibility requires a space, and vice versa", "zh-CN": "空间可见性必须绑定一个空间"},
}

type Localizer struct {
	bundle *goi18n.Bundle
}

func NewLocalizer(langs ...string) *Localizer {
	bundle := goi18n.NewBundle(language.English)
	for id, byLang := range messages {
		for lang, text := range byLang {
			tag, err := language.Parse(lang)
			if err != nil {
				continue
			}
			if err := bundle.AddMessages(tag, &goi18n.Message{ID: id, Other: text}); err != nil {
				panic(err)
			}
		}
	}
	return &Localizer{bundle: bundle}
}

// Get resolves a message code to user-facing text, falling back to the code
// itself when no translation exists.
func (l *Localizer) Get(lang, code string) string {
	msg, err := goi18n.NewLocalizer(l.bundle, lang, DEFAULT_LANG).Localize(&goi18n.LocalizeConfig{MessageID: code})
	if err != nil {
		return code
	}
	return msg
}
