package snowid

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/omeyang/snowid/pkg/base62"
)

// =============================================================================
// Generator
// =============================================================================

// Generator 分布式唯一 ID 生成器。
//
// 所有方法都是并发安全的；典型用法是进程内共享一个实例，
// 由任意多个 goroutine 并发调用 Generate。
//
// 唯一的可变共享状态是 st：一个打包了 (已发布时间戳, 序列号) 的原子字，
// 仅通过 CAS 变更。CAS 失败意味着另一个 goroutine 先发布了新状态，
// 失败方用新观察值重试即可，不存在部分更新。
type Generator struct {
	cfg    Config
	nodeID uint16

	// nodePrefix 预计算的 node_id << node_shift，组装 ID 时直接按位或。
	nodePrefix uint64
	// maxSequence 预取的 cfg.MaxSequenceID()，避免热路径方法调用。
	maxSequence uint16

	extract Extractor

	// st 打包状态字，见 state.go。初始为 (0, 0)。
	st atomic.Uint64

	// nowMillis 返回当前 Unix 毫秒。默认为真实时钟，测试中可替换。
	nowMillis func() int64
	// sleep 休眠函数。默认为 time.Sleep，测试中可替换。
	sleep func(time.Duration)
}

// New 用默认配置创建生成器。
//
// nodeID 超过默认配置的最大节点 ID（1023）时返回 [ErrInvalidNodeID]。
// 节点 ID 的跨实例唯一性由调用方保证，可参考 [DefaultNodeID]。
func New(nodeID uint16) (*Generator, error) {
	return NewWithConfig(nodeID, DefaultConfig())
}

// NewWithConfig 用指定配置创建生成器。
//
// nodeID 超过 cfg.MaxNodeID() 时返回 [ErrInvalidNodeID]。
func NewWithConfig(nodeID uint16, cfg Config) (*Generator, error) {
	// 零值 Config 防护：未经 NewConfig 构造的配置掩码全零，
	// 任何 nodeID 都会在此处被拒绝。
	if max := cfg.MaxNodeID(); nodeID > max {
		return nil, fmt.Errorf("%w: node id %d, maximum %d (%d node bits)",
			ErrInvalidNodeID, nodeID, max, cfg.NodeBits())
	}
	return &Generator{
		cfg:         cfg,
		nodeID:      nodeID,
		nodePrefix:  uint64(nodeID) << cfg.nodeShift,
		maxSequence: cfg.sequenceMask,
		extract:     NewExtractor(cfg),
		nowMillis:   unixMillis,
		sleep:       time.Sleep,
	}, nil
}

// NodeID 返回此生成器的节点 ID。
func (g *Generator) NodeID() uint16 { return g.nodeID }

// Config 返回此生成器的配置副本。
func (g *Generator) Config() Config { return g.cfg }

// Extractor 返回与此生成器位布局一致的提取器。
func (g *Generator) Extractor() Extractor { return g.extract }

// =============================================================================
// 生成
// =============================================================================

// Generate 生成下一个 ID。热路径操作：无锁、无错误返回、无堆分配。
//
// 快路径内联处理最常见的两个状态转移（时钟已前进、同毫秒且序列有余量），
// 各尝试一次 CAS；CAS 失败或序列耗尽时落入带退避的慢路径循环。
// 两条路径实现完全相同的转移语义。
func (g *Generator) Generate() uint64 {
	now := g.timeSinceEpoch()
	cur := stateFromRaw(g.st.Load())

	// 快路径 1：时钟已前进，尝试认领新毫秒（序列归零）
	if now > cur.timestamp() {
		if id, ok := g.tryClaimMillisecond(cur, now); ok {
			return id
		}
		return g.generateSlow()
	}

	// 快路径 2：同一毫秒内（或时钟回拨，now <= ts），尝试递增序列号
	if id, ok := g.tryIncrementSequence(cur); ok {
		return id
	}

	return g.generateSlow()
}

// generateSlow 慢路径：争用或序列耗尽时的重试循环。
//
// 每轮重新观察时钟与状态并重演与快路径相同的转移；
// 仅在序列耗尽时调用等待策略，退避时长按指数增长。
func (g *Generator) generateSlow() uint64 {
	backoff := initialBackoffMillis

	for {
		now := g.timeSinceEpoch()
		cur := stateFromRaw(g.st.Load())

		if now > cur.timestamp() {
			if id, ok := g.tryClaimMillisecond(cur, now); ok {
				return id
			}
			// CAS 失败只说明别的 goroutine 先发布了，重新观察即可
			continue
		}

		if id, ok := g.tryIncrementSequence(cur); ok {
			return id
		}

		// 序列耗尽：等待时钟越过已发布时间戳后重试，
		// 下一轮循环会以新时间戳去认领新毫秒
		g.waitUntilAdvanced(cur.timestamp(), backoff)
		backoff = nextBackoff(backoff)
	}
}

// tryClaimMillisecond 尝试把状态从 cur CAS 到 (timestamp, 0)。
// 成功则返回组装好的 ID：新毫秒的首个序列号为 0。
func (g *Generator) tryClaimMillisecond(cur state, timestamp uint64) (uint64, bool) {
	if !g.st.CompareAndSwap(cur.raw(), packState(timestamp, 0).raw()) {
		return 0, false
	}
	return g.assemble(timestamp, 0), true
}

// tryIncrementSequence 尝试在当前毫秒内把序列号加一。
//
// 时间戳沿用 cur.timestamp()：由于状态时间戳永不回退，
// 这天然实现了时钟回拨时的钳制——绝不发布低于已发布值的时间戳。
func (g *Generator) tryIncrementSequence(cur state) (uint64, bool) {
	if cur.sequence() >= g.maxSequence {
		return 0, false
	}
	next := cur.sequence() + 1
	if !g.st.CompareAndSwap(cur.raw(), packState(cur.timestamp(), next).raw()) {
		return 0, false
	}
	return g.assemble(cur.timestamp(), next), true
}

// assemble 按位布局组装 ID：纯位运算，无分支。
func (g *Generator) assemble(timestamp uint64, sequence uint16) uint64 {
	return (timestamp&g.cfg.timestampMask)<<timestampShift | g.nodePrefix | uint64(sequence)
}

// waitUntilAdvanced 阻塞到时钟严格越过 from，见 wait.go。
func (g *Generator) waitUntilAdvanced(from uint64, backoffMillis int64) uint64 {
	return waitUntilAdvanced(from, backoffMillis, g.cfg, g.timeSinceEpoch, g.sleep)
}

// =============================================================================
// 时钟
// =============================================================================

// unixMillis 返回当前 Unix 毫秒。
func unixMillis() int64 {
	return time.Now().UnixMilli()
}

// timeSinceEpoch 返回相对配置 epoch 的当前毫秒数。
// 时钟早于 epoch 时钳制为 0，单调性仍由已发布状态保证。
func (g *Generator) timeSinceEpoch() uint64 {
	now := g.nowMillis()
	epoch := int64(g.cfg.customEpoch)
	if now <= epoch {
		return 0
	}
	return uint64(now - epoch)
}

// =============================================================================
// 便捷方法
// =============================================================================

// GenerateBase62 生成下一个 ID 并编码为 base62 字符串（最长 11 字符）。
func (g *Generator) GenerateBase62() string {
	return base62.Encode(g.Generate())
}

// Decompose 分解 ID 为时间戳、节点与序列号，等价于 Extractor().Decompose。
func (g *Generator) Decompose(id uint64) Components {
	return g.extract.Decompose(id)
}
