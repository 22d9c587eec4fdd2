package cfgmig

import (
	"fmt"
	"slices"
)

// Chain 某一配置类型的迁移步骤注册表。
//
// 步骤按 From 升序保存，每个版本至多一个出边（不支持分支迁移图），
// 因此可达性判断是 O(跳数) 的线性贪心走链，而不是通用图搜索。
//
// 注册应在进程启动阶段完成，之后只读；并发读取无需加锁。
type Chain struct {
	steps []Step
}

// NewChain 创建空迁移链。
func NewChain() *Chain {
	return &Chain{}
}

// Register 注册一个迁移步骤。
//
// 失败情况：
//   - [ErrInvalidStep] - From >= To（迁移必须向前）
//   - [ErrInvalidStep] - Transform 为 nil
//   - [ErrDuplicateStep] - 同一 From 已注册过步骤
//
// 成功后内部集合保持按 From 升序。
func (c *Chain) Register(step Step) error {
	if step.From >= step.To {
		return fmt.Errorf("%w: got %d->%d", ErrInvalidStep, step.From, step.To)
	}
	if step.Transform == nil {
		return fmt.Errorf("%w: %d->%d has nil transform", ErrInvalidStep, step.From, step.To)
	}
	if _, ok := c.lookup(step.From); ok {
		return fmt.Errorf("%w: a step from version %d is already registered", ErrDuplicateStep, step.From)
	}

	idx, _ := slices.BinarySearchFunc(c.steps, step, func(a, b Step) int {
		return int(a.From - b.From)
	})
	c.steps = slices.Insert(c.steps, idx, step)

	return nil
}

// MustRegister 调用 [Chain.Register] 并在失败时 panic，适合启动阶段的
// 静态注册代码。
func (c *Chain) MustRegister(step Step) *Chain {
	if err := c.Register(step); err != nil {
		panic(err)
	}

	return c
}

// CanMigrate 判断能否从 source 版本走到 target 版本。
//
// source == target 时恒为 true；source > target 时恒为 false
// （迁移只能向前）。其余情况做贪心走链：从 source 出发逐跳前进，
// 仅当恰好落在 target 上才返回 true（越过 target 同样视为不可达）。
func (c *Chain) CanMigrate(source, target Version) bool {
	if source == target {
		return true
	}
	if source > target {
		return false
	}

	current := source
	for current < target {
		step, ok := c.lookup(current)
		if !ok {
			return false
		}
		current = step.To
	}

	return current == target
}

// Apply 沿迁移链将 doc 从 source 版本升级到 target 版本。
//
// source == target 时原样返回输入（空迁移必须零开销）。中间产物仅存在
// 于本次调用内，不会持久化。失败情况：
//   - [ErrNoMigrationPath] - 走链途中缺少步骤（防御性检查；
//     先调用 [Chain.CanMigrate] 则不会出现）
//   - [*StepError] - 某个步骤的 Transform 返回错误或产出 nil 文档
func (c *Chain) Apply(doc map[string]any, source, target Version) (map[string]any, error) {
	if source == target {
		return doc, nil
	}
	if source > target {
		return nil, fmt.Errorf("%w: cannot migrate backward from %d to %d", ErrNoMigrationPath, source, target)
	}

	current := source
	for current < target {
		step, ok := c.lookup(current)
		if !ok {
			return nil, fmt.Errorf("%w: no step from version %d toward %d", ErrNoMigrationPath, current, target)
		}

		next, err := step.Transform(doc)
		if err != nil {
			return nil, &StepError{From: step.From, To: step.To, Err: err}
		}
		if next == nil {
			return nil, &StepError{From: step.From, To: step.To, Err: fmt.Errorf("transform returned nil document")}
		}

		doc = next
		current = step.To
	}

	if current != target {
		return nil, fmt.Errorf("%w: chain overshoots from %d past %d to %d", ErrNoMigrationPath, source, target, current)
	}

	return doc, nil
}

// Steps 返回按 From 升序的步骤副本，用于诊断与自省
// （例如报告 "已注册 N 个迁移步骤"）。
func (c *Chain) Steps() []Step {
	return slices.Clone(c.steps)
}

// lookup 查找以 from 为起点的步骤。
func (c *Chain) lookup(from Version) (Step, bool) {
	for _, step := range c.steps {
		if step.From == from {
			return step, true
		}
		if step.From > from {
			break
		}
	}

	return Step{}, false
}
