package cfgmig

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStep 步骤版本对非法（From >= To，迁移必须向前）。
	ErrInvalidStep = errors.New("cfgmig: invalid step: To must be greater than From")

	// ErrDuplicateStep 同一起始版本已注册过步骤（每个版本至多一个出边）。
	ErrDuplicateStep = errors.New("cfgmig: duplicate step")

	// ErrNoMigrationPath 注册的步骤无法从源版本走到目标版本。
	ErrNoMigrationPath = errors.New("cfgmig: no migration path")
)

// Transform 单跳迁移函数。
//
// 输入是 From 版本的 JSON 文档（已解码为 map），输出必须符合 To 版本
// 的 schema。实现必须是纯函数：不修改输入、无副作用、相同输入产生
// 相同输出。常见形状可用 [AddField]、[RenameField]、[RemoveField]、
// [MapField] 组合。
type Transform func(doc map[string]any) (map[string]any, error)

// Step 单个迁移步骤，绑定有序版本对 (From, To)。
type Step struct {
	From      Version   // 输入文档的 schema 版本
	To        Version   // 输出文档的 schema 版本，必须大于 From
	Transform Transform // 纯函数转换
}

// StepError 迁移步骤执行失败，携带出错步骤的版本对与底层原因。
type StepError struct {
	From Version
	To   Version
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("cfgmig: step %d->%d failed: %v", e.From, e.To, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
