package snowid

import "errors"

// 构造期错误。Generate 本身没有错误返回：
// 争用与序列耗尽在内部解决，不上抛给调用方。
var (
	// ErrInvalidNodeBits 节点位数超出 [6, 16] 范围。
	// 下限 6 保证序列空间不至于过小，上限 16 保证节点 ID 可用 uint16 表示。
	ErrInvalidNodeBits = errors.New("snowid: node bits out of range [6, 16]")

	// ErrInvalidNodeID 节点 ID 超出当前配置允许的最大值 (1<<node_bits)-1。
	// 构造时返回而非 panic，便于批量部署在上线前校验节点分配。
	ErrInvalidNodeID = errors.New("snowid: node id exceeds configured maximum")

	// ErrNoPrivateAddress 无法找到私有 IP 地址。
	// 当所有节点 ID 获取策略（环境变量、主机名）均失败，
	// 且系统没有私有 IPv4 地址时，DefaultNodeID 返回此错误。
	ErrNoPrivateAddress = errors.New("snowid: no private IP address found")
)
