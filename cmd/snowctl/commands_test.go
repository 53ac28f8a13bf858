package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/snowid/pkg/base62"
	"github.com/omeyang/snowid/pkg/snowconf"
	"github.com/omeyang/snowid/pkg/snowid"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		arg     string
		encoded bool
		want    uint64
		wantErr bool
	}{
		{"decimal", "139980381425365017", false, 139980381425365017, false},
		{"decimal_zero", "0", false, 0, false},
		{"base62", base62.Encode(139980381425365017), true, 139980381425365017, false},
		{"bad_decimal", "12a", false, 0, true},
		{"negative_decimal", "-1", false, 0, true},
		{"bad_base62", "ab!cd", true, 0, true},
		{"base62_overflow", "zzzzzzzzzzzz", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseID(tt.arg, tt.encoded)
			if tt.wantErr {
				var usageErr *usageError
				assert.ErrorAs(t, err, &usageErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNodeID(t *testing.T) {
	cfg, err := snowid.NewConfig(snowid.WithNodeBits(6))
	require.NoError(t, err)

	t.Run("explicit_within_range", func(t *testing.T) {
		id, err := resolveNodeID(63, cfg)
		require.NoError(t, err)
		assert.Equal(t, uint16(63), id)
	})

	t.Run("explicit_exceeds_max", func(t *testing.T) {
		_, err := resolveNodeID(64, cfg)
		var usageErr *usageError
		assert.ErrorAs(t, err, &usageErr)
	})

	t.Run("fallback_masked", func(t *testing.T) {
		t.Setenv(snowid.EnvNodeID, "1000")

		id, err := resolveNodeID(-1, cfg)
		require.NoError(t, err)
		assert.Equal(t, uint16(1000)&cfg.MaxNodeID(), id)
	})
}

func TestFormatComponents(t *testing.T) {
	t.Parallel()

	cfg, err := snowid.NewConfig()
	require.NoError(t, err)
	extract := snowid.NewExtractor(cfg)

	// 手工拼装：timestamp=1000ms, node=42, sequence=7
	id := uint64(1000)<<22 | uint64(42)<<12 | 7

	out := formatComponents(extract, id)
	assert.Contains(t, out, "timestamp: 1000 (2024-01-01T00:00:01Z)")
	assert.Contains(t, out, "node:      42\n")
	assert.Contains(t, out, "sequence:  7\n")
	assert.Contains(t, out, "base62:    "+base62.Encode(id)+"\n")
}

func TestBuildGenerator_Flags(t *testing.T) {
	gen, err := buildGenerator(5, 8, "")
	require.NoError(t, err)
	assert.Equal(t, uint16(5), gen.NodeID())
	assert.Equal(t, uint8(8), gen.Config().NodeBits())
}

func TestBuildGenerator_InvalidNodeBits(t *testing.T) {
	_, err := buildGenerator(0, 17, "")
	var usageErr *usageError
	require.ErrorAs(t, err, &usageErr)
	assert.ErrorIs(t, err, snowid.ErrInvalidNodeBits)
}

func TestBuildGenerator_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snowid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("node_id: 9\nnode_bits: 12\n"), 0o600))

	gen, err := buildGenerator(-1, int(snowid.DefaultNodeBits), path)
	require.NoError(t, err)
	assert.Equal(t, uint16(9), gen.NodeID())
	assert.Equal(t, uint8(12), gen.Config().NodeBits())
}

// 命令行显式参数覆盖配置文件。
func TestBuildGenerator_FlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snowid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("node_id: 9\nnode_bits: 12\n"), 0o600))

	gen, err := buildGenerator(3, 8, path)
	require.NoError(t, err)
	assert.Equal(t, uint16(3), gen.NodeID())
	assert.Equal(t, uint8(8), gen.Config().NodeBits())
}

func TestBuildGenerator_MissingConfigFile(t *testing.T) {
	_, err := buildGenerator(-1, int(snowid.DefaultNodeBits), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, snowconf.ErrLoadFailed)
}

func TestCmdNew_InvalidCount(t *testing.T) {
	t.Parallel()

	err := cmdNew(0, -1, int(snowid.DefaultNodeBits), false, "")
	var usageErr *usageError
	assert.ErrorAs(t, err, &usageErr)
}

func TestWrapConfigError(t *testing.T) {
	t.Parallel()

	var usageErr *usageError

	err := wrapConfigError(snowid.ErrInvalidNodeBits)
	assert.ErrorAs(t, err, &usageErr)

	err = wrapConfigError(snowid.ErrInvalidNodeID)
	assert.ErrorAs(t, err, &usageErr)

	plain := errors.New("boom")
	assert.Same(t, plain, wrapConfigError(plain))
}

func TestCreateApp(t *testing.T) {
	t.Parallel()

	app := createApp()
	require.NotNil(t, app)

	names := make([]string, 0, len(app.Commands))
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"new", "inspect", "node"}, names)
}
