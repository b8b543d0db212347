package i18n

var en = map[string]string{
	"premium_title":     "Premium Requests %s",
	"premium_used":      "Used %d/%d",
	"premium_remaining": "%d left",
	"premium_daily":     "%.1f/day available",
	"period_progress":   "Period %.1f%%",
	"premium_copy":      "Copy: %d/%d (%.1f%%)",

	"spend_title":    "Usage-Based Pricing %s",
	"spend_subtitle": "Spent %s / %s | Budget left %s",
	"spend_copy":     "Copy: %s / %s (%.1f%%)",

	"account_title":    "Billing Cycle",
	"account_subtitle": "Last reset: %s | %d days ago",
	"account_copy":     "Copy: last reset %s",

	"refresh_title":     "Refresh",
	"refresh_subtitle":  "Force refresh Cursor usage data (cache: %ds)",
	"settings_title":    "Open Cursor Settings",
	"settings_subtitle": "Open the Cursor account settings page in a browser",

	"no_token_title":     "Cursor credentials not found",
	"no_token_subtitle":  "Make sure Cursor is signed in and try again",
	"api_error_title":    "Failed to fetch data",
	"api_error_subtitle": "Check your network connection and Cursor sign-in",
	"error_title":        "Failed to fetch data",
	"error_subtitle":     "Error: %s",

	"refreshed": "Data refreshed",
	"selected":  "Selected %s",
}

var zh = map[string]string{
	"premium_title":     "Premium 请求 %s",
	"premium_used":      "已用 %d/%d",
	"premium_remaining": "剩余 %d 次",
	"premium_daily":     "每日可用 %.1f 次",
	"period_progress":   "周期进度 %.1f%%",
	"premium_copy":      "复制: %d/%d (%.1f%%)",

	"spend_title":    "使用量计费 %s",
	"spend_subtitle": "已花费 %s / %s | 剩余预算 %s",
	"spend_copy":     "复制: %s / %s (%.1f%%)",

	"account_title":    "账户周期信息",
	"account_subtitle": "上次重置: %s | 已过 %d 天",
	"account_copy":     "复制: 上次重置时间 %s",

	"refresh_title":     "刷新数据",
	"refresh_subtitle":  "强制刷新 Cursor 使用量数据 (缓存: %ds)",
	"settings_title":    "打开 Cursor 设置",
	"settings_subtitle": "在浏览器中打开 Cursor 账户设置页面",

	"no_token_title":     "未找到 Cursor 认证信息",
	"no_token_subtitle":  "请确保 Cursor 已登录并重试",
	"api_error_title":    "获取数据失败",
	"api_error_subtitle": "请检查网络连接和 Cursor 登录状态",
	"error_title":        "获取数据失败",
	"error_subtitle":     "错误: %s",

	"refreshed": "数据已刷新",
	"selected":  "已选择 %s",
}
