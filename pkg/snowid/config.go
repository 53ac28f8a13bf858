package snowid

import "fmt"

// =============================================================================
// 位布局常量
// =============================================================================

const (
	// TimestampBits 时间戳位数（固定 42 位，毫秒精度下可用约 139 年）。
	TimestampBits = 42

	// totalNodeAndSequenceBits 节点位与序列位之和（固定 22 位）。
	// 不变量：node_bits + sequence_bits == 22，timestamp_bits + 22 == 64。
	totalNodeAndSequenceBits = 22

	// timestampShift 时间戳在 ID 中的左移位数，即低 22 位让给节点与序列。
	timestampShift = totalNodeAndSequenceBits

	// MinNodeBits 节点位数下限。
	MinNodeBits = 6

	// MaxNodeBits 节点位数上限。
	MaxNodeBits = 16
)

// =============================================================================
// 默认配置常量
// =============================================================================

const (
	// DefaultNodeBits 默认节点位数（1024 节点 × 4096 序列/ms）。
	DefaultNodeBits uint8 = 10

	// DefaultEpoch 默认自定义 epoch：2024-01-01 00:00:00 UTC（Unix 毫秒）。
	DefaultEpoch uint64 = 1704067200000

	// DefaultSpinEnabled 默认启用序列耗尽时的自旋等待。
	DefaultSpinEnabled = true

	// DefaultSpinLoops 默认自旋循环次数，0 表示禁用自旋阶段。
	DefaultSpinLoops uint32 = 64

	// DefaultSpinYieldEvery 默认每 N 次自旋让出一次时间片，0 表示纯忙旋。
	DefaultSpinYieldEvery uint32 = 16
)

// =============================================================================
// Config
// =============================================================================

// Config 生成器的不可变配置：位布局、epoch 与等待调优参数。
//
// 通过 DefaultConfig 或 NewConfig 构造后即不可变，可按值复制。
// 移位量与掩码在构造时一次性预计算，热路径不做任何重复推导。
type Config struct {
	nodeBits    uint8
	customEpoch uint64

	// 派生字段，构造时预计算
	nodeShift     uint8
	timestampMask uint64
	nodeMask      uint16
	sequenceMask  uint16

	spinEnabled    bool
	spinLoops      uint32
	spinYieldEvery uint32
}

// DefaultConfig 返回默认配置：node_bits=10、epoch=2024-01-01 UTC。
func DefaultConfig() Config {
	cfg, _ := NewConfig() // 默认值恒有效
	return cfg
}

// NewConfig 按选项构造配置。
//
// 节点位数超出 [MinNodeBits, MaxNodeBits] 时返回 [ErrInvalidNodeBits]；
// 其余选项为全函数，总是成功。
func NewConfig(opts ...ConfigOption) (Config, error) {
	o := defaultConfigOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.nodeBits < MinNodeBits || o.nodeBits > MaxNodeBits {
		return Config{}, fmt.Errorf("%w: got %d", ErrInvalidNodeBits, o.nodeBits)
	}

	sequenceBits := uint8(totalNodeAndSequenceBits) - o.nodeBits
	return Config{
		nodeBits:       o.nodeBits,
		customEpoch:    o.epoch,
		nodeShift:      sequenceBits,
		timestampMask:  (1 << TimestampBits) - 1,
		nodeMask:       bitMask(o.nodeBits),
		sequenceMask:   bitMask(sequenceBits),
		spinEnabled:    o.spinEnabled,
		spinLoops:      o.spinLoops,
		spinYieldEvery: o.spinYieldEvery,
	}, nil
}

// bitMask 计算给定位数的掩码 (1<<bits)-1。
func bitMask(bits uint8) uint16 {
	return uint16((uint32(1) << bits) - 1)
}

// NodeBits 返回节点 ID 占用的位数。
func (c Config) NodeBits() uint8 { return c.nodeBits }

// SequenceBits 返回序列号占用的位数（22 - node_bits）。
func (c Config) SequenceBits() uint8 { return totalNodeAndSequenceBits - c.nodeBits }

// Epoch 返回自定义 epoch（Unix 毫秒）。
func (c Config) Epoch() uint64 { return c.customEpoch }

// MaxNodeID 返回当前配置允许的最大节点 ID。
func (c Config) MaxNodeID() uint16 { return c.nodeMask }

// MaxSequenceID 返回同一毫秒内允许的最大序列号。
func (c Config) MaxSequenceID() uint16 { return c.sequenceMask }

// SpinEnabled 返回是否启用自旋等待。
func (c Config) SpinEnabled() bool { return c.spinEnabled }

// SpinLoops 返回自旋循环次数。
func (c Config) SpinLoops() uint32 { return c.spinLoops }

// SpinYieldEvery 返回自旋让步间隔。
func (c Config) SpinYieldEvery() uint32 { return c.spinYieldEvery }
