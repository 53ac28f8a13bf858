package snowid

// 生成器状态字：把 (已发布时间戳, 已发布序列号) 打包进一个 64 位字，
// 以便用单次 CAS 原子地发布两个逻辑字段。
//
// 布局：高 48 位 = 时间戳，低 16 位 = 序列号。
// 内部 16 位序列字段足以容纳可配置的最大序列范围（sequence_bits ≤ 16），
// 它与对外 ID 的位布局（timestamp/node/sequence）是两套独立的打包方案，
// 不可混用。
const (
	stateSequenceBits = 16
	stateSequenceMask = (1 << stateSequenceBits) - 1
)

// state 打包后的生成器状态。
//
// 不变量：任何线程观察到的 (timestamp, sequence) 对按字典序单调不减——
// 时间戳永不回退，序列号只在时间戳严格前进时归零。
// 由于时间戳占高位，该字典序等价于 raw 值的数值序。
type state uint64

// packState 由时间戳与序列号构造状态。
func packState(timestamp uint64, sequence uint16) state {
	return state(timestamp<<stateSequenceBits | uint64(sequence))
}

// stateFromRaw 由原子操作读出的原始值还原状态。
func stateFromRaw(raw uint64) state {
	return state(raw)
}

// raw 返回用于原子操作的原始值。
func (s state) raw() uint64 {
	return uint64(s)
}

// timestamp 提取时间戳分量。
func (s state) timestamp() uint64 {
	return uint64(s) >> stateSequenceBits
}

// sequence 提取序列号分量。
func (s state) sequence() uint16 {
	return uint16(uint64(s) & stateSequenceMask)
}
