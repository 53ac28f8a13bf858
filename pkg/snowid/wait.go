package snowid

import (
	"runtime"
	"time"
)

// 序列耗尽时的等待策略：先自旋后休眠。
//
// 耗尽通常只需等到下一毫秒边界，自旋阶段以廉价的时钟重查避开
// 操作系统休眠调度的毫秒级粒度；持续争用时退到指数退避休眠，
// 限制最坏情况下的 CPU 消耗。

const (
	// initialBackoffMillis 休眠阶段的起始退避时长（毫秒）。
	initialBackoffMillis int64 = 1

	// maxBackoffMillis 退避时长上限（毫秒）。
	maxBackoffMillis int64 = 100
)

// waitUntilAdvanced 阻塞到 now() 严格大于 from，返回新时间戳。
//
// 绝不在时钟未前进时返回——这是生成算法活性的唯一外部依赖。
// 以 now/sleep 回调参数化，测试中注入假时钟即可免真实休眠。
func waitUntilAdvanced(from uint64, backoffMillis int64, cfg Config, now func() uint64, sleep func(time.Duration)) uint64 {
	for {
		// 阶段一：自旋（可选）
		if ts, ok := spinWait(from, cfg, now); ok {
			return ts
		}

		// 阶段二：休眠后重查，退避指数增长
		sleep(time.Duration(backoffMillis) * time.Millisecond)
		if ts := now(); ts > from {
			return ts
		}
		backoffMillis = nextBackoff(backoffMillis)
	}
}

// spinWait 自旋阶段：至多 spinLoops 次时钟重查，
// 每 spinYieldEvery 次额外让出一次时间片（0 表示纯忙旋）。
// 时钟前进则立即返回 (新时间戳, true)；循环耗尽返回 (0, false)。
func spinWait(from uint64, cfg Config, now func() uint64) (uint64, bool) {
	if !cfg.spinEnabled || cfg.spinLoops == 0 {
		return 0, false
	}

	yieldEvery := cfg.spinYieldEvery
	for i := uint32(0); i < cfg.spinLoops; i++ {
		if ts := now(); ts > from {
			return ts, true
		}
		if yieldEvery != 0 && i%yieldEvery == yieldEvery-1 {
			runtime.Gosched()
		}
	}
	return 0, false
}

// nextBackoff 计算下一档退避时长：翻倍并封顶于 maxBackoffMillis。
func nextBackoff(current int64) int64 {
	next := current * 2
	if next > maxBackoffMillis {
		return maxBackoffMillis
	}
	return next
}
