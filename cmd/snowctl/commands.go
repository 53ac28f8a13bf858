package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/snowid/pkg/base62"
	"github.com/omeyang/snowid/pkg/snowconf"
	"github.com/omeyang/snowid/pkg/snowid"
)

// createNewCommand 创建 new 子命令（生成 ID）。
func createNewCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "生成 ID",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"c"},
				Usage:   "生成数量",
				Value:   1,
			},
			&cli.IntFlag{
				Name:    "node",
				Aliases: []string{"n"},
				Usage:   "节点 ID（缺省时自动解析）",
				Value:   -1,
			},
			&cli.IntFlag{
				Name:    "node-bits",
				Aliases: []string{"b"},
				Usage:   "节点位数 (6-16)",
				Value:   int(snowid.DefaultNodeBits),
			},
			&cli.BoolFlag{
				Name:  "base62",
				Usage: "输出 base62 编码",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"f"},
				Usage:   "配置文件路径 (YAML/JSON)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdNew(cmd.Int("count"), cmd.Int("node"), cmd.Int("node-bits"),
				cmd.Bool("base62"), cmd.String("config"))
		},
	}
}

// createInspectCommand 创建 inspect 子命令（分解 ID）。
func createInspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "分解 ID，显示时间戳、节点与序列号",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "base62",
				Usage: "输入按 base62 解码",
			},
			&cli.IntFlag{
				Name:    "node-bits",
				Aliases: []string{"b"},
				Usage:   "节点位数 (6-16)",
				Value:   int(snowid.DefaultNodeBits),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return usageErrorf("inspect 需要且仅需要一个 ID 参数")
			}
			return cmdInspect(cmd.Args().First(), cmd.Bool("base62"), cmd.Int("node-bits"))
		},
	}
}

// createNodeCommand 创建 node 子命令（显示解析出的节点 ID）。
func createNodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "node",
		Usage: "显示默认策略在本机解析出的节点 ID",
		Action: func(_ context.Context, _ *cli.Command) error {
			return cmdNode()
		},
	}
}

// =============================================================================
// 命令实现
// =============================================================================

// cmdNew 生成 count 个 ID 并逐行输出。
func cmdNew(count, node, nodeBits int, encode bool, configPath string) error {
	if count < 1 {
		return usageErrorf("--count 必须为正数，得到 %d", count)
	}

	gen, err := buildGenerator(node, nodeBits, configPath)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		if encode {
			fmt.Println(gen.GenerateBase62())
		} else {
			fmt.Println(gen.Generate())
		}
	}
	return nil
}

// buildGenerator 按命令行参数或配置文件构造生成器。
// 命令行显式传入的 --node / --node-bits 优先于配置文件。
func buildGenerator(node, nodeBits int, configPath string) (*snowid.Generator, error) {
	if configPath != "" {
		return generatorFromConfigFile(node, nodeBits, configPath)
	}

	cfg, err := snowid.NewConfig(snowid.WithNodeBits(uint8(nodeBits)))
	if err != nil {
		return nil, wrapConfigError(err)
	}
	nodeID, err := resolveNodeID(node, cfg)
	if err != nil {
		return nil, err
	}

	gen, err := snowid.NewWithConfig(nodeID, cfg)
	if err != nil {
		return nil, wrapConfigError(err)
	}
	return gen, nil
}

// generatorFromConfigFile 从配置文件构造生成器，命令行参数覆盖文件值。
func generatorFromConfigFile(node, nodeBits int, configPath string) (*snowid.Generator, error) {
	settings, err := snowconf.Load(configPath)
	if err != nil {
		return nil, err
	}
	if nodeBits != int(snowid.DefaultNodeBits) {
		settings.NodeBits = nodeBits
	}
	if node >= 0 {
		settings.NodeID = node
	}

	cfg, err := settings.Config()
	if err != nil {
		return nil, wrapConfigError(err)
	}
	nodeID, err := settings.ResolveNodeID(cfg)
	if err != nil {
		return nil, wrapConfigError(err)
	}

	gen, err := snowid.NewWithConfig(nodeID, cfg)
	if err != nil {
		return nil, wrapConfigError(err)
	}
	return gen, nil
}

// resolveNodeID 解析命令行节点 ID，缺省时回退默认策略并按上限截断。
func resolveNodeID(node int, cfg snowid.Config) (uint16, error) {
	if node >= 0 {
		if node > int(cfg.MaxNodeID()) {
			return 0, usageErrorf("--node %d 超出上限 %d（%d 位节点）",
				node, cfg.MaxNodeID(), cfg.NodeBits())
		}
		return uint16(node), nil
	}

	id, err := snowid.DefaultNodeID()
	if err != nil {
		return 0, err
	}
	return id & cfg.MaxNodeID(), nil
}

// cmdInspect 分解并打印 ID 的各组成部分。
func cmdInspect(arg string, encoded bool, nodeBits int) error {
	cfg, err := snowid.NewConfig(snowid.WithNodeBits(uint8(nodeBits)))
	if err != nil {
		return wrapConfigError(err)
	}

	id, err := parseID(arg, encoded)
	if err != nil {
		return err
	}

	extract := snowid.NewExtractor(cfg)
	fmt.Print(formatComponents(extract, id))
	return nil
}

// parseID 解析命令行传入的 ID（十进制或 base62）。
func parseID(arg string, encoded bool) (uint64, error) {
	if encoded {
		id, err := base62.Decode(arg)
		if err != nil {
			return 0, usageErrorf("无效的 base62 ID %q: %v", arg, err)
		}
		return id, nil
	}

	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, usageErrorf("无效的十进制 ID %q: %v", arg, err)
	}
	return id, nil
}

// formatComponents 格式化 ID 分解结果。
func formatComponents(extract snowid.Extractor, id uint64) string {
	parts := extract.Decompose(id)
	ts := time.UnixMilli(extract.UnixMilli(id)).UTC()

	var b strings.Builder
	fmt.Fprintf(&b, "id:        %d\n", parts.ID)
	fmt.Fprintf(&b, "base62:    %s\n", base62.Encode(parts.ID))
	fmt.Fprintf(&b, "timestamp: %d (%s)\n", parts.Timestamp, ts.Format(time.RFC3339Nano))
	fmt.Fprintf(&b, "node:      %d\n", parts.Node)
	fmt.Fprintf(&b, "sequence:  %d\n", parts.Sequence)
	return b.String()
}

// cmdNode 打印默认策略解析出的节点 ID。
func cmdNode() error {
	id, err := snowid.DefaultNodeID()
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

// wrapConfigError 把构造期配置错误映射为参数错误（退出码 2）。
func wrapConfigError(err error) error {
	if errors.Is(err, snowid.ErrInvalidNodeBits) || errors.Is(err, snowid.ErrInvalidNodeID) {
		return &usageError{err: err}
	}
	return err
}
