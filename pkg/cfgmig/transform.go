package cfgmig

import (
	"fmt"
	"strings"
)

// 本文件提供常见迁移形状的 Transform 工厂。
// 所有工厂产出的 Transform 都不修改输入文档，key 支持点号路径
// （如 server.addr）。

// Compose 将多个 Transform 串联为一个步骤内的顺序转换。
func Compose(transforms ...Transform) Transform {
	return func(doc map[string]any) (map[string]any, error) {
		var err error
		for _, t := range transforms {
			doc, err = t(doc)
			if err != nil {
				return nil, err
			}
		}

		return doc, nil
	}
}

// AddField 注入字段默认值；字段已存在时保留原值。
func AddField(key string, value any) Transform {
	return func(doc map[string]any) (map[string]any, error) {
		out := cloneDoc(doc)
		if _, ok := getByPath(out, key); !ok {
			setByPath(out, key, value)
		}

		return out, nil
	}
}

// RenameField 重命名字段；旧字段缺失时原样返回。
func RenameField(oldKey, newKey string) Transform {
	return func(doc map[string]any) (map[string]any, error) {
		out := cloneDoc(doc)
		value, ok := getByPath(out, oldKey)
		if !ok {
			return out, nil
		}
		deleteByPath(out, oldKey)
		setByPath(out, newKey, value)

		return out, nil
	}
}

// RemoveField 删除字段；字段缺失时原样返回。
func RemoveField(key string) Transform {
	return func(doc map[string]any) (map[string]any, error) {
		out := cloneDoc(doc)
		deleteByPath(out, key)

		return out, nil
	}
}

// MapField 对字段值应用转换函数；字段缺失时原样返回。
func MapField(key string, fn func(value any) (any, error)) Transform {
	return func(doc map[string]any) (map[string]any, error) {
		out := cloneDoc(doc)
		value, ok := getByPath(out, key)
		if !ok {
			return out, nil
		}

		mapped, err := fn(value)
		if err != nil {
			return nil, fmt.Errorf("map field %s: %w", key, err)
		}
		setByPath(out, key, mapped)

		return out, nil
	}
}

// cloneDoc 深拷贝文档的 map 骨架（切片与标量按值共享）。
func cloneDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		if child, ok := value.(map[string]any); ok {
			out[key] = cloneDoc(child)

			continue
		}
		out[key] = value
	}

	return out
}

// getByPath 按点号路径读取值。
func getByPath(doc map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := doc
	for i, part := range parts {
		if i == len(parts)-1 {
			value, ok := current[part]

			return value, ok
		}

		next, ok := current[part].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}

	return nil, false
}

// setByPath 按点号路径写入值，途中自动创建嵌套 map。
func setByPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := doc
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value

			return
		}

		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
}

// deleteByPath 按点号路径删除值；路径不存在时为空操作。
func deleteByPath(doc map[string]any, path string) {
	idx := strings.LastIndex(path, ".")
	if idx == -1 {
		delete(doc, path)

		return
	}

	parent, ok := getByPath(doc, path[:idx])
	if !ok {
		return
	}
	if parentMap, ok := parent.(map[string]any); ok {
		delete(parentMap, path[idx+1:])
	}
}
