package cfgmig

import (
	"encoding/json"
	"log/slog"
	"os"
)

// Result 一次配置加载的全部可观测结果。
//
// WasCreated 与 WasMigrated 互斥：前者表示文件缺失或任何失败回退，
// 配置来自默认工厂；后者表示文件经过迁移链升级后成功反序列化。
// 两者都为 false 表示文件按当前（或更新的）schema 直接加载。
type Result[T any] struct {
	Config          *T      // 有效配置，任何路径下都非 nil
	WasCreated      bool    // 配置由默认工厂新建（文件缺失或加载失败）
	WasMigrated     bool    // 配置经迁移链升级
	OriginalVersion Version // 文件探测到的原始版本
}

// Service 某一配置类型的迁移加载服务。
//
// 每个配置类型持有独立的 Service 实例：当前 schema 版本在构造时显式
// 给定（而非运行时反射推断），迁移链按类型注入。实例创建后只读，
// 可被并发 Load 安全使用。
type Service[T any] struct {
	target   Version
	defaults func() T
	chain    *Chain
	logger   *slog.Logger
}

// NewService 创建迁移加载服务。
//
// target 是该配置类型当前的 schema 版本；defaults 在文件缺失或任何
// 加载失败时构造全新默认配置。未通过 [WithChain] 注入迁移链时，
// 旧版本文件只能回退默认值。
func NewService[T any](target Version, defaults func() T, opts ...Option) *Service[T] {
	options := newOptions(opts...)

	return &Service[T]{
		target:   target,
		defaults: defaults,
		chain:    options.chain,
		logger:   options.logger,
	}
}

// Target 返回该配置类型当前的 schema 版本。
func (s *Service[T]) Target() Version {
	return s.target
}

// Chain 返回注入的迁移链，未注入时返回空链。
func (s *Service[T]) Chain() *Chain {
	return s.chain
}

// Load 加载并按需迁移 path 指向的 JSON 配置文件。
//
// 该方法对任何文件内容都不返回错误：损坏、权限、缺失路径、步骤失败
// 一律被包含，降级为默认配置并记录日志。决策顺序：
//
//  1. 文件不存在 - 默认配置，WasCreated = true
//  2. 版本相等 - 直接反序列化
//  3. 版本较旧 - 走迁移链后反序列化，任何失败回退默认值
//  4. 版本较新 - 尽力按当前 schema 直接反序列化（不拒绝）
//  5. 其他任何失败 - 回退默认值
func (s *Service[T]) Load(path string) Result[T] {
	data, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Config file not found, creating defaults", "path", path)

			return s.created()
		}

		// 权限或其他 I/O 错误同样回退默认值
		s.logger.Warn("Config file unreadable, falling back to defaults", "path", path, "error", err)

		return s.created()
	}

	return s.LoadBytes(data)
}

// LoadBytes 是 [Service.Load] 的字节切片版本，供上层在读取与解析之间
// 插入预处理（如模板展开）时使用。语义与 Load 的第 2 步起完全一致。
func (s *Service[T]) LoadBytes(data []byte) (result Result[T]) {
	// 迁移步骤与反序列化钩子都可能 panic；整体兜底为默认配置
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Config load panicked, falling back to defaults", "panic", r)
			result = s.created()
		}
	}()

	probed := ProbeVersionBytes(data)
	s.logger.Debug("Probed config version", "version", int(probed), "target", int(s.target))

	switch {
	case probed == s.target:
		return s.loadCurrent(data, probed)
	case probed > s.target:
		// 文件来自更新的发行版：尽力直接加载而不是拒绝
		s.logger.Warn("Config version is newer than this build, loading as-is",
			"version", int(probed), "target", int(s.target))

		return s.loadCurrent(data, probed)
	default:
		return s.migrate(data, probed)
	}
}

// loadCurrent 按当前 schema 直接反序列化。
func (s *Service[T]) loadCurrent(data []byte, probed Version) Result[T] {
	cfg, err := s.decode(data)
	if err != nil {
		s.logger.Error("Config deserialize failed, falling back to defaults", "error", err)

		return s.created()
	}

	return Result[T]{Config: cfg, OriginalVersion: probed}
}

// migrate 沿迁移链升级后反序列化；任何失败回退默认值。
func (s *Service[T]) migrate(data []byte, probed Version) Result[T] {
	if !s.chain.CanMigrate(probed, s.target) {
		s.logger.Error("No migration path for config, falling back to defaults",
			"from", int(probed), "to", int(s.target), "steps", len(s.chain.Steps()))

		return s.created()
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Error("Config parse failed before migration, falling back to defaults", "error", err)

		return s.created()
	}

	migrated, err := s.chain.Apply(doc, probed, s.target)
	if err != nil {
		s.logger.Error("Config migration failed, falling back to defaults",
			"from", int(probed), "to", int(s.target), "error", err)

		return s.created()
	}

	cfg := s.defaults()
	if err := decodeDocument(migrated, &cfg); err != nil {
		s.logger.Error("Migrated config deserialize failed, falling back to defaults", "error", err)

		return s.created()
	}

	s.logger.Info("Config migrated", "from", int(probed), "to", int(s.target))

	return Result[T]{Config: &cfg, WasMigrated: true, OriginalVersion: probed}
}

// decode 解析 JSON 并弱类型反序列化为 T。
func (s *Service[T]) decode(data []byte) (*T, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	cfg := s.defaults()
	if err := decodeDocument(doc, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// created 构造默认配置结果。
func (s *Service[T]) created() Result[T] {
	cfg := s.defaults()

	return Result[T]{Config: &cfg, WasCreated: true}
}
