package cfgman

import (
	"os"
	"path/filepath"
)

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// appName 可选，提供后会追加应用专属路径。
// 返回顺序即查找顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.json - 当前目录应用配置
//  2. ~/.appname.json - 用户主目录配置
//  3. /etc/appname/config.json - 系统级配置
//  4. config.json - 当前目录通用配置
//  5. config/config.json - 子目录通用配置
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		// 当前目录应用配置 (最高优先级)
		paths = append(paths, "."+name+".json")
		// 用户主目录
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".json"))
		}
		// 系统配置目录
		paths = append(paths, "/etc/"+name+"/config.json")
	}

	// 当前目录通用配置 (最低优先级)
	paths = append(paths, "config.json", "config/config.json")

	return paths
}

// resolvePath 返回首个存在的路径；全部缺失时返回首个候选
// （作为新建配置的写入位置）。
func resolvePath(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return paths[0]
}
