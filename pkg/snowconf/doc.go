// Package snowconf 提供生成器配置的文件加载能力（YAML/JSON）。
//
// 分布式部署中，节点分配通常由部署系统（如 K8s ConfigMap）下发。
// snowconf 把文件内容解析为 [Settings]，再由 Settings.Config
// 构造 snowid.Config，配置错误（如非法节点位数）在上线前即可暴露。
//
// # 配置格式
//
//	node_id: 42          # 可选；缺省时调用方可回退 snowid.DefaultNodeID
//	node_bits: 10        # 可选，范围 6-16
//	epoch_ms: 1704067200000
//	spin:
//	  enabled: true
//	  loops: 64
//	  yield_every: 16
//
// 所有键都可缺省，缺省值与 snowid 包的默认配置一致。
//
// # 用法
//
//	settings, err := snowconf.Load("snowid.yaml")
//	if err != nil {
//	    return err
//	}
//	cfg, err := settings.Config()
//	if err != nil {
//	    return err
//	}
//	nodeID, err := settings.ResolveNodeID(cfg)
//	if err != nil {
//	    return err
//	}
//	gen, err := snowid.NewWithConfig(nodeID, cfg)
package snowconf
