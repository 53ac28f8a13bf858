// Package snowid 提供无锁的分布式唯一 ID 生成能力（Snowflake/TSID 风格）。
//
// # 设计理念
//
// snowid 生成 64 位整数 ID：全局唯一（节点 ID 分配正确的前提下）、
// 按时间排序、严格单调递增。多个生成器实例（每节点一个）可独立运行，
// 无需任何中心协调器；单个实例可被任意多个 goroutine 并发调用。
//
// 核心是单字原子状态 + CAS 的无锁生成算法：
//   - 时间戳与序列号打包进同一个 64 位原子字，所有变更通过 CAS 发布
//   - 快路径（时钟前进或序列号有余量）内联无循环、零分配
//   - 序列号耗尽时采用先自旋后休眠的等待策略，兼顾延迟与 CPU 占用
//   - 时钟回拨时以已发布时间戳为准，保证 ID 永不回退
//
// # ID 结构
//
// 64 位 ID 由以下部分组成（高位在前）：
//
//	42 bits - 时间戳（毫秒，相对自定义 epoch，可用约 139 年）
//	 N bits - 节点 ID（N 可配置，范围 6-16，默认 10，即最多 1024 节点）
//	22-N bits - 序列号（默认 12 位，同一毫秒内最多 4096 个 ID）
//
// 默认 epoch 为 2024-01-01 00:00:00 UTC（1704067200000 ms）。
//
// # 快速开始
//
//	gen, err := snowid.New(nodeID)
//	if err != nil {
//	    return err
//	}
//
//	id := gen.Generate()            // uint64
//	s := gen.GenerateBase62()       // 可排序的短字符串，最长 11 字符
//
//	parts := gen.Decompose(id)
//	fmt.Println(parts.Timestamp, parts.Node, parts.Sequence)
//
// # 自定义配置
//
//	cfg, err := snowid.NewConfig(
//	    snowid.WithNodeBits(12),            // 4096 节点 × 1024 序列/ms
//	    snowid.WithEpoch(1735689600000),    // 2025-01-01 UTC
//	)
//	if err != nil {
//	    return err
//	}
//	gen, err := snowid.NewWithConfig(nodeID, cfg)
//
// # 节点 ID 获取策略
//
// 节点 ID 的跨实例唯一性由调用方负责。DefaultNodeID 提供多层回退策略，
// 适用于 K8s 等环境下的工程化部署：
//
//  1. SNOWID_NODE_ID 环境变量（直接指定数字 0-65535）
//  2. POD_NAME 环境变量的哈希值（K8s Downward API）
//  3. HOSTNAME 环境变量的哈希值
//  4. os.Hostname() 的哈希值
//  5. 私有 IP 地址的低 16 位
//
// 哈希回退策略（2-4）仅提供概率唯一。需要严格全局唯一时，
// 请通过 SNOWID_NODE_ID 显式分配，并确保其小于配置的节点上限。
//
// # 并发与保证
//
// Generate 是并发安全的热路径操作，对共享实例的所有保证：
//   - 同一实例产生的所有 ID 两两不同
//   - 按数值排序即为按生成顺序排序（同毫秒内由序列号决出先后）
//   - 时钟回拨不会导致时间戳回退（以已发布值钳制）
//
// Generate 没有错误返回：争用与序列耗尽在内部通过重试/退避解决，
// 活性依赖宿主时钟最终前进。唯一可能阻塞调用线程的是等待策略的休眠阶段。
package snowid
