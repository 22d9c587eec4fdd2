package cfgman

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lwmacct/260830-go-pkg-cfgmig/pkg/cfgmig"
	"github.com/lwmacct/260830-go-pkg-cfgmig/pkg/templexp"
)

// Manager 某一配置类型的文件管理者：持有路径，负责加载、迁移后的
// 写回与热重载。加载与迁移语义由注入的 [cfgmig.Service] 提供。
type Manager[T any] struct {
	path    string
	service *cfgmig.Service[T]
	logger  *slog.Logger
	expand  bool
	persist bool
	mode    os.FileMode
}

// New 创建配置管理者。
//
// 路径解析优先级：[WithPath] > [WithPaths] > [WithAppName] 生成的
// [DefaultPaths] > 无应用名的 [DefaultPaths]。搜索型路径先命中生效，
// 全部缺失时使用首个候选作为新建位置。
func New[T any](service *cfgmig.Service[T], opts ...Option) *Manager[T] {
	options := newOptions(opts...)

	path := options.path
	if path == "" {
		paths := options.paths
		if len(paths) == 0 {
			if options.appName != "" {
				paths = DefaultPaths(options.appName)
			} else {
				paths = DefaultPaths()
			}
		}
		path = resolvePath(paths)
	}

	return &Manager[T]{
		path:    path,
		service: service,
		logger:  options.logger,
		expand:  !options.noExpand,
		persist: !options.noPersist,
		mode:    options.mode,
	}
}

// Path 返回解析后的配置文件路径。
func (m *Manager[T]) Path() string {
	return m.path
}

// Load 加载配置并按需写回。
//
// 配置本身总是有效的（加载失败降级为默认值，见 [cfgmig.Service.Load]）；
// error 仅反映写回磁盘的失败。新建与迁移后的配置会以当前 schema 版本
// 持久化，除非设置了 [WithoutPersist]。
func (m *Manager[T]) Load() (cfgmig.Result[T], error) {
	result := m.load()

	if m.persist && (result.WasCreated || result.WasMigrated) {
		if err := m.Save(result.Config); err != nil {
			return result, fmt.Errorf("persist config %s: %w", m.path, err)
		}
		m.logger.Info("Config persisted",
			"path", m.path, "created", result.WasCreated, "migrated", result.WasMigrated)
	}

	return result, nil
}

// load 读取、展开并交给服务加载。
func (m *Manager[T]) load() cfgmig.Result[T] {
	if !m.expand {
		return m.service.Load(m.path)
	}

	data, err := os.ReadFile(m.path) //nolint:gosec // path is from trusted config
	if err != nil {
		// 缺失或不可读统一交给服务处理
		return m.service.Load(m.path)
	}

	expanded, err := templexp.ExpandTemplate(string(data))
	if err != nil {
		// 展开失败（必填变量缺失等）不阻断加载，按原文继续
		m.logger.Warn("Template expansion failed, using raw config", "path", m.path, "error", err)

		return m.service.LoadBytes(data)
	}

	return m.service.LoadBytes([]byte(expanded))
}

// Save 将配置以当前 schema 版本写入磁盘。
//
// 文档顶层会注入 Version 字段；写入使用临时文件加 rename，避免
// 半写状态被后续加载读到。
func (m *Manager[T]) Save(cfg *T) error {
	doc, err := documentFromConfig(cfg, m.service.Target())
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cfgman-*.json")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Chmod(tmpPath, m.mode); err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("chmod temp config: %w", err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("rename temp config: %w", err)
	}

	return nil
}

// documentFromConfig 将配置结构体转为带 Version 字段的 JSON 文档。
func documentFromConfig(cfg any, version cfgmig.Version) (map[string]any, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config must marshal to a JSON object: %w", err)
	}
	doc["Version"] = int(version)

	return doc, nil
}
