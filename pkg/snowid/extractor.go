package snowid

// =============================================================================
// Extractor
// =============================================================================

// Components 表示 ID 分解后的各组成部分。
type Components struct {
	// ID 原始 ID 值
	ID uint64
	// Timestamp 时间戳部分（毫秒，相对配置的 epoch，42 位）
	Timestamp uint64
	// Node 节点 ID 部分（node_bits 位）
	Node uint16
	// Sequence 序列号部分（22 - node_bits 位）
	Sequence uint16
}

// Extractor 按配置的位布局从 ID 中提取各字段。
//
// 纯函数集合，无状态、无失败分支：任意 64 位输入都被接受，
// 越界输入只是取出恰好落在对应字段上的位——这是读取而非校验。
type Extractor struct {
	cfg Config
}

// NewExtractor 创建与 cfg 位布局一致的提取器。
func NewExtractor(cfg Config) Extractor {
	return Extractor{cfg: cfg}
}

// Timestamp 提取时间戳字段（毫秒，相对 epoch）。
func (e Extractor) Timestamp(id uint64) uint64 {
	return (id >> timestampShift) & e.cfg.timestampMask
}

// Node 提取节点 ID 字段。
func (e Extractor) Node(id uint64) uint16 {
	return uint16((id >> e.cfg.nodeShift) & uint64(e.cfg.nodeMask))
}

// Sequence 提取序列号字段。
func (e Extractor) Sequence(id uint64) uint16 {
	return uint16(id & uint64(e.cfg.sequenceMask))
}

// Decompose 一次提取全部三个字段。
func (e Extractor) Decompose(id uint64) Components {
	return Components{
		ID:        id,
		Timestamp: e.Timestamp(id),
		Node:      e.Node(id),
		Sequence:  e.Sequence(id),
	}
}

// UnixMilli 返回 ID 时间戳对应的绝对 Unix 毫秒（加回 epoch）。
func (e Extractor) UnixMilli(id uint64) int64 {
	return int64(e.Timestamp(id) + e.cfg.customEpoch)
}
