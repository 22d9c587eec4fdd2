package cfgmig

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
)

// Version 配置 schema 版本号，非负整数。
//
// 0 表示 "legacy"：文件缺少 Version 字段，或字段无法读取。
// 两种情况下游处理方式一致（视为最旧版本，走完整迁移链），
// 因此合并为同一哨兵值。
type Version int

// ProbeVersion 读取文件并提取顶层整数字段 Version。
//
// 以下情况均返回 0（不是错误）：
//   - 文件不存在或不可读
//   - 文件为空或仅含空白字符
//   - JSON 语法非法
//   - Version 字段缺失
//   - Version 字段不是非负整数
//
// 探测只做最小解码，不会完整反序列化文档。
func ProbeVersion(path string) Version {
	data, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
	if err != nil {
		return 0
	}

	return ProbeVersionBytes(data)
}

// ProbeVersionBytes 是 [ProbeVersion] 的字节切片版本。
func ProbeVersionBytes(data []byte) Version {
	if len(bytes.TrimSpace(data)) == 0 {
		return 0
	}

	// 只解码顶层 Version 字段，其余内容保持原样
	var head struct {
		Version json.RawMessage `json:"Version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return 0
	}
	if len(head.Version) == 0 {
		return 0
	}

	n, err := strconv.Atoi(string(bytes.TrimSpace(head.Version)))
	if err != nil || n < 0 {
		return 0
	}

	return Version(n)
}
