package snowconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/snowid/pkg/snowid"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式（推荐用于 K8s ConfigMap）。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// delim koanf 的键路径分隔符。
const delim = "."

// =============================================================================
// Settings
// =============================================================================

// Settings 从配置文件解析出的生成器设置。
// 缺省键保持与 snowid 包一致的默认值；NodeID 为 -1 表示未配置。
type Settings struct {
	// NodeID 节点 ID（0-65535），-1 表示未配置。
	NodeID int `koanf:"node_id"`
	// NodeBits 节点位数，范围 6-16。
	NodeBits int `koanf:"node_bits"`
	// EpochMS 自定义 epoch（Unix 毫秒）。
	EpochMS int64 `koanf:"epoch_ms"`
	// Spin 等待策略调优。
	Spin SpinSettings `koanf:"spin"`
}

// SpinSettings 序列耗尽时自旋等待的调优参数。
type SpinSettings struct {
	// Enabled 是否启用自旋阶段。
	Enabled bool `koanf:"enabled"`
	// Loops 自旋循环次数，0 表示禁用。
	Loops int `koanf:"loops"`
	// YieldEvery 每 N 次自旋让出一次时间片，0 表示纯忙旋。
	YieldEvery int `koanf:"yield_every"`
}

// defaultSettings 返回填好默认值的设置。
// koanf 的反序列化按键合并，文件中缺省的键保留这里的默认值。
func defaultSettings() Settings {
	return Settings{
		NodeID:   -1,
		NodeBits: int(snowid.DefaultNodeBits),
		EpochMS:  int64(snowid.DefaultEpoch),
		Spin: SpinSettings{
			Enabled:    snowid.DefaultSpinEnabled,
			Loops:      int(snowid.DefaultSpinLoops),
			YieldEvery: int(snowid.DefaultSpinYieldEvery),
		},
	}
}

// =============================================================================
// 加载
// =============================================================================

// Load 从文件加载生成器设置。
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json）。
func Load(path string) (Settings, error) {
	if path == "" {
		return Settings{}, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return Settings{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载生成器设置。
// 需要显式指定格式，适用于 K8s ConfigMap 等场景。
// 空数据返回全默认值的 Settings，与空文件行为一致。
func LoadBytes(data []byte, format Format) (Settings, error) {
	parser, err := parserFor(format)
	if err != nil {
		return Settings{}, err
	}

	k := koanf.New(delim)
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return Settings{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}

	settings := defaultSettings()
	if err := k.UnmarshalWithConf("", &settings, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}

	if err := settings.validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// validate 校验数值范围。位布局的合法性最终由 snowid.NewConfig 判定，
// 这里只拦截类型转换会静默截断的越界值。
func (s Settings) validate() error {
	if s.NodeID < -1 || s.NodeID > 65535 {
		return fmt.Errorf("%w: node_id %d out of range [0, 65535]", ErrInvalidSettings, s.NodeID)
	}
	if s.NodeBits < 0 || s.NodeBits > 255 {
		return fmt.Errorf("%w: node_bits %d out of range", ErrInvalidSettings, s.NodeBits)
	}
	if s.EpochMS < 0 {
		return fmt.Errorf("%w: epoch_ms %d must be non-negative", ErrInvalidSettings, s.EpochMS)
	}
	if s.Spin.Loops < 0 || int64(s.Spin.Loops) > int64(^uint32(0)) {
		return fmt.Errorf("%w: spin.loops %d out of range", ErrInvalidSettings, s.Spin.Loops)
	}
	if s.Spin.YieldEvery < 0 || int64(s.Spin.YieldEvery) > int64(^uint32(0)) {
		return fmt.Errorf("%w: spin.yield_every %d out of range", ErrInvalidSettings, s.Spin.YieldEvery)
	}
	return nil
}

// =============================================================================
// 转换
// =============================================================================

// HasNodeID 报告配置文件是否显式指定了节点 ID。
func (s Settings) HasNodeID() bool {
	return s.NodeID >= 0
}

// Config 按设置构造 snowid.Config。
// 非法的节点位数由 snowid.NewConfig 返回 snowid.ErrInvalidNodeBits。
func (s Settings) Config() (snowid.Config, error) {
	return snowid.NewConfig(
		snowid.WithNodeBits(uint8(s.NodeBits)),
		snowid.WithEpoch(uint64(s.EpochMS)),
		snowid.WithSpin(s.Spin.Enabled),
		snowid.WithSpinLoops(uint32(s.Spin.Loops)),
		snowid.WithSpinYieldEvery(uint32(s.Spin.YieldEvery)),
	)
}

// ResolveNodeID 返回应使用的节点 ID。
//
// 配置文件显式指定时直接使用（越界返回包裹 snowid.ErrInvalidNodeID 的错误）；
// 未指定时回退 snowid.DefaultNodeID 并按 cfg 的节点上限掩码截断。
func (s Settings) ResolveNodeID(cfg snowid.Config) (uint16, error) {
	if s.HasNodeID() {
		if s.NodeID > int(cfg.MaxNodeID()) {
			return 0, fmt.Errorf("%w: node_id %d, maximum %d (%d node bits)",
				snowid.ErrInvalidNodeID, s.NodeID, cfg.MaxNodeID(), cfg.NodeBits())
		}
		return uint16(s.NodeID), nil
	}

	id, err := snowid.DefaultNodeID()
	if err != nil {
		return 0, err
	}
	// MaxNodeID 是 (1<<bits)-1 形式的掩码，按位与即取模
	return id & cfg.MaxNodeID(), nil
}

// =============================================================================
// 格式检测
// =============================================================================

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// parserFor 返回对应格式的 koanf 解析器。
func parserFor(format Format) (koanf.Parser, error) {
	switch format {
	case FormatYAML:
		return yaml.Parser(), nil
	case FormatJSON:
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
