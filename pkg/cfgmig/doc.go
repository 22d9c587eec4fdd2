// Package cfgmig 提供带版本号的配置迁移功能。
//
// 持久化的 JSON 配置对象携带顶层整数字段 Version，加载时与当前
// schema 版本比较；旧版本文件会按注册的迁移步骤逐跳升级后再反序列化。
// 任何损坏、I/O 错误或缺失的迁移路径都会降级为默认配置，绝不向调用方
// 抛出异常。
//
// # 核心组件
//
//  1. [Step] - 单个纯函数迁移步骤，绑定 (From, To) 版本对
//  2. [Chain] - 按配置类型注册步骤，负责可达性判断与链式执行
//  3. [ProbeVersion] - 轻量读取文档的 Version 字段，不做完整反序列化
//  4. [Service] - 加载入口，决定直接加载、迁移或回退默认值
//
// # 加载决策 (从上到下)
//
//  1. 文件不存在 - 构造默认配置，WasCreated = true
//  2. 版本相等 - 直接反序列化
//  3. 版本较旧 - 沿迁移链升级后反序列化；失败则回退默认值
//  4. 版本较新 - 尽力按当前 schema 直接反序列化
//  5. 其他任何失败 - 回退默认值
//
// # 快速开始
//
// 定义配置结构体与当前版本：
//
//	type Config struct {
//	    Name     string `json:"name"`
//	    Greeting string `json:"greeting"`
//	}
//
//	const CurrentVersion cfgmig.Version = 1
//
// 注册迁移步骤并创建服务：
//
//	chain := cfgmig.NewChain()
//	_ = chain.Register(cfgmig.Step{
//	    From:      0,
//	    To:        1,
//	    Transform: cfgmig.AddField("greeting", "Hello"),
//	})
//
//	svc := cfgmig.NewService(CurrentVersion, DefaultConfig,
//	    cfgmig.WithChain(chain),
//	)
//
//	result := svc.Load("config.json")
//
// # 失败处理
//
// [Service.Load] 不返回 error：所有失败类别（语法损坏、步骤失败、
// 反序列化失败、权限错误）都被完整包含，统一降级为默认配置，并通过
// 注入的 logger 记录原因。调用方通过 [Result] 的 WasCreated /
// WasMigrated / OriginalVersion 判断本次加载的实际路径。
//
// # 约束
//
//   - 迁移只能向前（To > From），不支持降级
//   - 每个版本至多一个出边（不支持分支迁移图），查找为线性贪心走链
//   - 步骤注册应在进程启动阶段完成，之后链只读，无需加锁
package cfgmig
