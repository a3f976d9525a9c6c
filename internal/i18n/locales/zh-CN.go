package locales

// Messages 简体中文翻译
var MessagesZhCN = map[string]string{
	// 通用消息
	"common.success": "成功",
	"common.healthy": "服务运行正常",

	// 服务信息
	"service.description": "中文、英文、希腊文之间的文本翻译 REST API",
	"service.running":     "翻译 API 运行中",

	// 翻译相关
	"translate.success":       "翻译完成",
	"translate.batch_success": "批量翻译完成",
	"translate.failed":        "翻译失败：{{.Reason}}",

	// 校验错误
	"error.invalid_language":  "无效的语言代码：{{.Code}}，必须为以下之一：{{.Valid}}",
	"error.same_language":     "源语言和目标语言不能相同",
	"error.unsupported_route": "不存在从 {{.From}} 到 {{.To}} 的翻译路由",
	"error.missing_field":     "缺少必填字段：{{.Field}}",
	"error.invalid_json":      "JSON 格式无效",

	// 缓存相关
	"cache.cleared": "模型缓存已清空",
	"cache.stats":   "缓存统计",

	// 历史记录
	"history.listed": "翻译历史",
}
