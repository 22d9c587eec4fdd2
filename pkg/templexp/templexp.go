package templexp

import (
	"fmt"
	"os"
	"strings"
)

// ExpandTemplate 对输入字符串执行 Shell 参数展开。
//
// 支持语法：
//   - ${VAR} - 变量替换，未设置展开为空串
//   - ${VAR:-default} / ${VAR-default} - fallback
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于当前展开）
//
// 带冒号的形式把空值视同未设置。支持嵌套（如 ${A:-${B:-x}}）与 "$$"
// 字面量；仅识别 ${...}，不解析裸 $VAR。
//
// 返回展开后的字符串；仅在必填校验失败时返回 error。
func ExpandTemplate(text string) (string, error) {
	e := &expander{vars: environSnapshot()}

	return e.expand(text)
}

// environSnapshot 生成当前环境变量快照。
//
// ":=" 与 "=" 的赋值只写入这份快照，不会污染进程环境。
func environSnapshot() map[string]string {
	vars := make(map[string]string)
	for _, env := range os.Environ() {
		if key, value, ok := strings.Cut(env, "="); ok {
			vars[key] = value
		}
	}

	return vars
}

// expander 携带变量快照的展开器。
type expander struct {
	vars map[string]string
}

func (e *expander) expand(text string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 >= len(text) {
			buf.WriteByte(text[i])
			i++

			continue
		}

		switch text[i+1] {
		case '$':
			// "$$" 转义为字面量 "$"
			buf.WriteByte('$')
			i += 2
		case '{':
			end := matchBrace(text, i+2)
			if end == -1 {
				buf.WriteByte('$')
				i++

				continue
			}

			replaced, ok, err := e.evaluate(text[i+2 : end])
			if err != nil {
				return "", err
			}
			if ok {
				buf.WriteString(replaced)
			} else {
				// 不是合法的参数表达式，保留原文
				buf.WriteString(text[i : end+1])
			}
			i = end + 1
		default:
			buf.WriteByte('$')
			i++
		}
	}

	return buf.String(), nil
}

// evaluate 求值大括号内的参数表达式。
//
// 第二个返回值为 false 表示表达式不合法，调用方应保留原文。
func (e *expander) evaluate(expr string) (string, bool, error) {
	name, op, word, ok := splitExpr(expr)
	if !ok {
		return "", false, nil
	}

	value, isSet := e.vars[name]
	// 带冒号的操作符把空值视同未设置
	missing := !isSet
	if strings.HasPrefix(op, ":") {
		missing = !isSet || value == ""
	}

	switch strings.TrimPrefix(op, ":") {
	case "":
		if isSet {
			return value, true, nil
		}

		return "", true, nil
	case "-":
		if missing {
			expanded, err := e.expandWord(word)

			return expanded, true, err
		}

		return value, true, nil
	case "+":
		if missing {
			return "", true, nil
		}
		expanded, err := e.expandWord(word)

		return expanded, true, err
	case "?":
		if missing {
			if word == "" {
				return "", false, fmt.Errorf("templexp: %s: parameter null or not set", name)
			}

			return "", false, fmt.Errorf("templexp: %s: %s", name, word)
		}

		return value, true, nil
	case "=":
		if missing {
			expanded, err := e.expandWord(word)
			if err == nil {
				e.vars[name] = expanded
			}

			return expanded, true, err
		}

		return value, true, nil
	}

	return "", false, nil
}

// expandWord 递归展开操作符右侧的 word（支持嵌套 ${...}）。
func (e *expander) expandWord(word string) (string, error) {
	if !strings.Contains(word, "${") {
		return word, nil
	}

	return e.expand(word)
}

// splitExpr 将表达式拆为变量名、操作符与 word。
//
// 变量名须以字母或下划线开头；操作符为 -、+、?、= 及其带冒号变体。
func splitExpr(expr string) (name, op, word string, ok bool) {
	if expr == "" || !isNameStart(expr[0]) {
		return "", "", "", false
	}

	i := 1
	for i < len(expr) && isNameChar(expr[i]) {
		i++
	}
	name = expr[:i]
	rest := expr[i:]

	if rest == "" {
		return name, "", "", true
	}

	if rest[0] == ':' && len(rest) >= 2 && isExpandOp(rest[1]) {
		return name, rest[:2], rest[2:], true
	}
	if isExpandOp(rest[0]) {
		return name, rest[:1], rest[1:], true
	}

	return "", "", "", false
}

func isExpandOp(ch byte) bool {
	return ch == '-' || ch == '+' || ch == '?' || ch == '='
}

func isNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

// matchBrace 从 start 起寻找匹配的右大括号，支持嵌套的 ${...}。
func matchBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}
