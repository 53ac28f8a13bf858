package snowid

// =============================================================================
// 配置选项
// =============================================================================

// configOptions NewConfig 的内部配置结构。
type configOptions struct {
	nodeBits       uint8
	epoch          uint64
	spinEnabled    bool
	spinLoops      uint32
	spinYieldEvery uint32
}

// defaultConfigOptions 返回填好默认值的选项集。
func defaultConfigOptions() configOptions {
	return configOptions{
		nodeBits:       DefaultNodeBits,
		epoch:          DefaultEpoch,
		spinEnabled:    DefaultSpinEnabled,
		spinLoops:      DefaultSpinLoops,
		spinYieldEvery: DefaultSpinYieldEvery,
	}
}

// ConfigOption 配置选项函数。
type ConfigOption func(*configOptions)

// WithNodeBits 设置节点 ID 位数，有效范围 [MinNodeBits, MaxNodeBits]。
//
// 序列位数自动为 22 - bits：位数越大可容纳节点越多，
// 但同一毫秒内的序列空间越小。超出范围时 NewConfig 返回 [ErrInvalidNodeBits]。
func WithNodeBits(bits uint8) ConfigOption {
	return func(o *configOptions) {
		o.nodeBits = bits
	}
}

// WithEpoch 设置自定义 epoch（Unix 毫秒）。
//
// 所有生成的时间戳都相对此基准点，选用较近的日期可延长
// 42 位时间戳字段的可用年限。默认为 [DefaultEpoch]（2024-01-01 UTC）。
func WithEpoch(epochMillis uint64) ConfigOption {
	return func(o *configOptions) {
		o.epoch = epochMillis
	}
}

// WithSpin 设置序列耗尽时是否先自旋再休眠。
//
// 序列耗尽通常只需等到下一毫秒，自旋可避开操作系统休眠调度的
// 毫秒级粒度开销；关闭后直接进入指数退避休眠。
func WithSpin(enabled bool) ConfigOption {
	return func(o *configOptions) {
		o.spinEnabled = enabled
	}
}

// WithSpinLoops 设置自旋循环次数，0 等效于禁用自旋阶段。
func WithSpinLoops(loops uint32) ConfigOption {
	return func(o *configOptions) {
		o.spinLoops = loops
	}
}

// WithSpinYieldEvery 设置自旋让步节奏：每 N 次自旋让出一次时间片。
// 0 表示不让步（纯忙旋）。
func WithSpinYieldEvery(n uint32) ConfigOption {
	return func(o *configOptions) {
		o.spinYieldEvery = n
	}
}
