// snowctl 是 snowid 的命令行工具，用于生成与检视分布式 ID。
//
// 用法:
//
//	snowctl [全局选项] <命令> [命令参数]
//
// 命令:
//
//	new            生成 ID
//	  --count, -c      生成数量 (默认: 1)
//	  --node, -n       节点 ID (默认: 自动解析)
//	  --node-bits, -b  节点位数 6-16 (默认: 10)
//	  --base62         输出 base62 编码
//	  --config, -f     从 YAML/JSON 文件加载配置
//	inspect <id>   分解 ID，显示时间戳（UTC）、节点与序列号
//	  --base62         输入按 base62 解码
//	  --node-bits, -b  节点位数 6-16 (默认: 10)
//	node           显示默认策略在本机解析出的节点 ID
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败
//	2: 参数错误（无效 ID、越界节点位数、未知命令等）
//
// 示例:
//
//	snowctl new                          # 生成一个 ID
//	snowctl new -c 10 --base62           # 生成 10 个 base62 编码的 ID
//	snowctl new -f snowid.yaml           # 按配置文件生成
//	snowctl inspect 139980381425365017   # 分解十进制 ID
//	snowctl inspect --base62 AdE1yNmJQx  # 分解 base62 编码的 ID
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "snowctl",
		Usage:   "snowid 分布式 ID 命令行工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Commands: []*cli.Command{
			createNewCommand(),
			createInspectCommand(),
			createNodeCommand(),
		},
		DefaultCommand: "help",
		// 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一处理退出码映射。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run() int {
	app := createApp()

	if err := app.Run(context.Background(), os.Args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}

// usageError 参数错误，run() 将其映射为退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}
