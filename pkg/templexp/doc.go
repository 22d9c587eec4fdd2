// Package templexp 提供配置文本的 Shell 参数展开。
//
// 配置文件中的 ${VAR:-default} 等占位符会在解析前替换为环境变量值，
// 便于同一份配置在不同环境间复用。
//
// # 支持语法
//
//   - ${VAR} - 变量替换，未设置展开为空串
//   - ${VAR:-default} / ${VAR-default} - fallback
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于当前展开）
//
// 带冒号的形式把空值视同未设置。支持嵌套与 "$$" 字面量；
// 仅识别 ${...}，不解析裸 $VAR。
//
// # 示例
//
//	// config.json
//	{
//	    "api_key": "${API_KEY?api key is required}",
//	    "base_url": "${PROD_URL:-${DEV_URL:-http://localhost:8080}}"
//	}
//
// 展开失败只有一种情况：必填校验（? / :?）未通过。
package templexp
