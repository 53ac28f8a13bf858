package snowid

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"net/netip"
	"os"
	"strconv"
)

// 测试注入点：允许测试替换系统调用以覆盖所有错误分支。
var (
	osHostname        = os.Hostname
	netInterfaceAddrs = net.InterfaceAddrs
)

// =============================================================================
// 环境变量
// =============================================================================

const (
	// EnvNodeID 直接指定节点 ID 的环境变量（0-65535）。
	EnvNodeID = "SNOWID_NODE_ID"

	// EnvPodName K8s Pod 名称环境变量（通过 Downward API 注入）。
	EnvPodName = "POD_NAME"

	// EnvHostname 主机名环境变量（某些环境会设置）。
	EnvHostname = "HOSTNAME"
)

// =============================================================================
// 节点 ID 获取策略
// =============================================================================

// DefaultNodeID 获取节点 ID，按以下优先级尝试：
//
//  1. SNOWID_NODE_ID 环境变量（直接指定数字 0-65535）
//  2. POD_NAME 环境变量的哈希值（K8s Downward API）
//  3. HOSTNAME 环境变量的哈希值
//  4. os.Hostname() 的哈希值
//  5. 私有 IP 地址的低 16 位
//
// 哈希回退策略（2-4）仅提供概率唯一，不保证严格全局唯一；
// 需要严格唯一时请通过 SNOWID_NODE_ID 显式分配。
//
// 返回值占满 16 位空间。节点位数小于 16 的配置下，
// 请先对 Config.MaxNodeID() 取模/按位与后再传给 New。
func DefaultNodeID() (uint16, error) {
	// 策略 1：直接从环境变量读取
	if s := os.Getenv(EnvNodeID); s != "" {
		id, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("snowid: invalid %s value %q: %w", EnvNodeID, s, err)
		}
		return uint16(id), nil
	}

	// 策略 2：从 Pod 名称哈希
	if id, ok := nodeIDFromPodName(); ok {
		return id, nil
	}

	// 策略 3：从 HOSTNAME 环境变量哈希
	if id, ok := nodeIDFromHostnameEnv(); ok {
		return id, nil
	}

	// 策略 4：从 os.Hostname() 哈希。系统错误留待全链路失败时聚合输出。
	hostnameID, hostnameErr := nodeIDFromOSHostname()
	if hostnameErr == nil {
		return hostnameID, nil
	}

	// 策略 5：从私有 IP 地址
	id, err := nodeIDFromPrivateIP()
	if err != nil {
		return 0, fmt.Errorf("snowid: all node ID strategies exhausted (os-hostname: %v): %w", hostnameErr, err)
	}
	return id, nil
}

// nodeIDFromPodName 从 POD_NAME 环境变量的哈希值获取节点 ID。
// K8s 中可通过 Downward API 注入：
//
//	env:
//	  - name: POD_NAME
//	    valueFrom:
//	      fieldRef:
//	        fieldPath: metadata.name
func nodeIDFromPodName() (uint16, bool) {
	podName := os.Getenv(EnvPodName)
	if podName == "" {
		return 0, false
	}
	return hashToNodeID(podName), true
}

// nodeIDFromHostnameEnv 从 HOSTNAME 环境变量的哈希值获取节点 ID。
func nodeIDFromHostnameEnv() (uint16, bool) {
	hostname := os.Getenv(EnvHostname)
	if hostname == "" {
		return 0, false
	}
	return hashToNodeID(hostname), true
}

// nodeIDFromOSHostname 从 os.Hostname() 的哈希值获取节点 ID。
func nodeIDFromOSHostname() (uint16, error) {
	hostname, err := osHostname()
	if err != nil {
		return 0, err
	}
	if hostname == "" {
		return 0, errors.New("os.Hostname returned empty string")
	}
	return hashToNodeID(hostname), nil
}

// nodeIDFromPrivateIP 从私有 IP 地址的低 16 位获取节点 ID。
//
// 注意：net.InterfaceAddrs 的枚举顺序依赖于操作系统，多网卡环境下
// 重启后可能选到不同的 IP，导致节点 ID 变化。
// 生产环境建议通过 SNOWID_NODE_ID 环境变量显式分配。
func nodeIDFromPrivateIP() (uint16, error) {
	ip, err := privateIPv4()
	if err != nil {
		return 0, err
	}
	b := ip.As4()
	return uint16(b[2])<<8 + uint16(b[3]), nil
}

// hashToNodeID 将字符串哈希为 16 位节点 ID。
// 使用 FNV-1a 哈希算法，通过 XOR 折叠将 32 位哈希压缩为 16 位，
// 比简单截断更充分利用完整哈希值。
func hashToNodeID(s string) uint16 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s)) // hash.Hash.Write never returns error
	b := h.Sum(nil)           // FNV-32 返回 4 字节大端序
	hi := uint16(b[0])<<8 | uint16(b[1])
	lo := uint16(b[2])<<8 | uint16(b[3])
	return hi ^ lo
}

// =============================================================================
// 私有 IP 获取
// =============================================================================

// privateIPv4 获取私有 IPv4 地址。
func privateIPv4() (netip.Addr, error) {
	addrs, err := netInterfaceAddrs()
	if err != nil {
		return netip.Addr{}, err
	}

	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}

		ip, ok := netip.AddrFromSlice(ipnet.IP)
		if !ok {
			continue
		}
		ip = ip.Unmap()
		if ip.IsLoopback() || !ip.Is4() {
			continue
		}

		if isPrivateIPv4(ip) {
			return ip, nil
		}
	}

	return netip.Addr{}, ErrNoPrivateAddress
}

// isPrivateIPv4 判断是否为私有 IPv4 地址，
// 包括 RFC1918 私有地址和 RFC3927 链路本地地址。
func isPrivateIPv4(ip netip.Addr) bool {
	ip = ip.Unmap()
	if !ip.Is4() {
		return false
	}
	return ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
