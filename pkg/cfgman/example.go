package cfgman

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"time"

	yamlv3 "go.yaml.in/yaml/v3"
)

// MarshalJSON 根据配置结构体生成缩进的 JSON 示例。
//
// 序列化失败时返回空对象 "{}"（示例生成不应让调用方处理错误）。
func MarshalJSON(cfg any) []byte {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return []byte("{}")
	}

	return data
}

// ExampleYAML 根据配置结构体生成带注释的 YAML 示例。
//
// 字段 key 来自 json tag，注释来自 desc tag；嵌套结构体会以空行加
// 注释分组。输出适合直接写入 config.example.yaml。
//
// 示例：
//
//	type Config struct {
//	    Name    string        `json:"name"    desc:"应用名称"`
//	    Timeout time.Duration `json:"timeout" desc:"超时时间"`
//	}
func ExampleYAML(cfg any) []byte {
	root := structToYAMLNode(reflect.ValueOf(cfg))
	if root == nil {
		return nil
	}
	root.HeadComment = "配置示例文件, 复制此文件为 config.yaml 并根据需要修改"

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil
	}
	_ = enc.Close()

	return buf.Bytes()
}

// structToYAMLNode 将结构体转为带注释的 YAML mapping 节点。
func structToYAMLNode(val reflect.Value) *yamlv3.Node {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	node := &yamlv3.Node{Kind: yamlv3.MappingNode}
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}

		key := jsonTagName(field)
		if key == "" {
			continue
		}
		desc := field.Tag.Get("desc")

		keyNode := &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: key}
		valueNode := fieldToYAMLNode(val.Field(i), field.Type)
		if valueNode == nil {
			continue
		}

		if valueNode.Kind == yamlv3.MappingNode {
			// 嵌套结构体：分组注释放在 key 上方
			if desc != "" {
				keyNode.HeadComment = desc
			}
		} else if desc != "" {
			valueNode.LineComment = desc
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node
}

// fieldToYAMLNode 将单个字段值转为 YAML 节点。
func fieldToYAMLNode(val reflect.Value, typ reflect.Type) *yamlv3.Node {
	if typ.Kind() == reflect.Pointer {
		if val.IsNil() {
			return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null", Value: "null"}
		}
		val = val.Elem()
		typ = typ.Elem()
	}

	// 特殊标量类型
	switch typ {
	case reflect.TypeFor[time.Duration]():
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: val.Interface().(time.Duration).String()}
	case reflect.TypeFor[time.Time]():
		return &yamlv3.Node{
			Kind:  yamlv3.ScalarNode,
			Style: yamlv3.SingleQuotedStyle,
			Value: val.Interface().(time.Time).Format(time.RFC3339),
		}
	}

	if typ.Kind() == reflect.Struct {
		return structToYAMLNode(val)
	}

	var node yamlv3.Node
	if err := node.Encode(val.Interface()); err != nil {
		return nil
	}
	if typ.Kind() == reflect.String {
		node.Style = yamlv3.SingleQuotedStyle
	}

	return &node
}

// jsonTagName 提取 json tag 的 key 名，忽略选项与 "-"。
func jsonTagName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return ""
	}

	return name
}
