package cfgman

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lwmacct/260830-go-pkg-cfgmig/pkg/cfgmig"
)

// watchDebounce 文件连续变更的合并窗口。
const watchDebounce = 200 * time.Millisecond

// Watch 监听配置文件变更并热重载。
//
// 监听配置文件所在目录（比直接监听文件更可靠，编辑器的原子替换不会
// 丢事件），写入与创建事件经去抖后重新执行 [Manager.Load]，结果交给
// onReload。阻塞直到 ctx 取消；仅在监听器无法建立时返回 error。
//
// 重载期间的写回失败只记录日志，不中断监听。
func (m *Manager[T]) Watch(ctx context.Context, onReload func(result cfgmig.Result[T])) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	absPath, err := filepath.Abs(m.path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	m.logger.Info("Watching config file", "path", absPath)

	configFile := filepath.Base(absPath)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != configFile {
				continue
			}

			switch {
			case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create):
				m.logger.Debug("Config file changed", "file", event.Name, "op", event.Op.String())
				// 去抖：连续变更只触发一次重载
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
					timerC = timer.C
				} else {
					timer.Reset(watchDebounce)
				}
			case event.Op.Has(fsnotify.Remove):
				m.logger.Warn("Config file removed", "file", event.Name)
			}

		case <-timerC:
			timer = nil
			timerC = nil

			result, err := m.Load()
			if err != nil {
				m.logger.Error("Config reload persist failed", "error", err)
			}
			m.logger.Info("Config reloaded",
				"created", result.WasCreated, "migrated", result.WasMigrated)
			onReload(result)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.logger.Error("Config watcher error", "error", err)
		}
	}
}
