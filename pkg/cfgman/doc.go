// Package cfgman 提供配置文件的路径管理与持久化。
//
// [cfgmig] 只负责加载与迁移；本包是它的上层协作者：确定配置文件路径、
// 在新建或迁移后把结果写回磁盘，并支持热重载。
//
// # 加载流程
//
//  1. 解析配置路径（显式路径或 [DefaultPaths] 搜索，先命中生效）
//  2. 读取文件并执行模板展开（${VAR:-default}，可禁用）
//  3. 交给 [cfgmig.Service] 探测版本、按需迁移
//  4. 新建或迁移产生的配置原子写回磁盘（可禁用）
//
// # 快速开始
//
//	svc := cfgmig.NewService(config.CurrentVersion, config.DefaultConfig,
//	    cfgmig.WithChain(config.NewChain()),
//	)
//
//	mgr := cfgman.New(svc,
//	    cfgman.WithAppName("myapp"),  // 自动搜索 .myapp.json 等
//	)
//
//	result, err := mgr.Load()
//
// # 热重载
//
// [Manager.Watch] 监听配置文件变更并重新加载：
//
//	err := mgr.Watch(ctx, func(result cfgmig.Result[Config]) {
//	    // 应用新配置
//	})
//
// 写回使用临时文件加 rename，同一路径的并发写者不做协调：
// 设计假定每个配置文件在进程内只有一个管理者。
package cfgman
