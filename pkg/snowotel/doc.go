// Package snowotel 提供 snowid 生成器的 OpenTelemetry 指标埋点。
//
// 核心生成器的热路径保持零分配、无观测开销；需要指标时用本包的
// 包装器替代直接调用：
//
//	gen, _ := snowid.New(nodeID)
//	igen, err := snowotel.Wrap(gen)
//	if err != nil {
//	    return err
//	}
//	id := igen.Generate(ctx)
//
// 记录的指标：
//
//	snowid.generated.total     - 生成的 ID 总数（计数器，按节点打标）
//	snowid.generate.duration   - 单次生成耗时（直方图，秒）
//
// 默认使用全局 MeterProvider，可通过 WithMeterProvider 注入。
package snowotel
