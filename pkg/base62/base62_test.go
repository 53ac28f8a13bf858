package base62

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_KnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    uint64
		want string
	}{
		{"zero", 0, "0"},
		{"nine", 9, "9"},
		{"ten_is_A", 10, "A"},
		{"thirty_five_is_Z", 35, "Z"},
		{"thirty_six_is_a", 36, "a"},
		{"sixty_one_is_z", 61, "z"},
		{"sixty_two_wraps", 62, "10"},
		{"base_squared", 62 * 62, "100"},
		{"max_uint64", math.MaxUint64, "LygHa16AHYF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.v))
		})
	}
}

func TestEncode_MaxLen(t *testing.T) {
	t.Parallel()

	assert.LessOrEqual(t, len(Encode(math.MaxUint64)), MaxLen)
}

// 等长编码之间按字节比较即按数值比较。
func TestEncode_OrderPreservingSameLength(t *testing.T) {
	t.Parallel()

	pairs := [][2]uint64{
		{100, 101},
		{62 * 62, 62*62 + 1},
		{math.MaxUint64 - 1, math.MaxUint64},
	}
	for _, p := range pairs {
		a, b := Encode(p[0]), Encode(p[1])
		require.Len(t, b, len(a))
		assert.Less(t, a, b)
	}
}

func TestDecode_Roundtrip(t *testing.T) {
	t.Parallel()

	values := []uint64{0, 1, 61, 62, 1000, math.MaxUint64 / 2, math.MaxUint64 - 1, math.MaxUint64}
	for _, v := range values {
		got, err := Decode(Encode(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDecode_LeadingZeros(t *testing.T) {
	t.Parallel()

	got, err := Decode("007")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrEmptyInput},
		{"invalid_punct", "abc!", ErrInvalidCharacter},
		{"invalid_space", "a b", ErrInvalidCharacter},
		{"invalid_unicode", "中文", ErrInvalidCharacter},
		{"overflow_by_one", "LygHa16AHYG", ErrOverflow},
		{"overflow_longer", "zzzzzzzzzzzz", ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_InvalidCharacterPosition(t *testing.T) {
	t.Parallel()

	_, err := Decode("ab-cd")
	require.ErrorIs(t, err, ErrInvalidCharacter)
	assert.Contains(t, err.Error(), "index 2")
}

func TestAppendEncode(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 0, MaxLen)
	buf = AppendEncode(buf, 12345)
	assert.Equal(t, Encode(12345), string(buf))

	// 追加语义：不覆盖已有内容
	buf = AppendEncode(buf, 67890)
	assert.Equal(t, Encode(12345)+Encode(67890), string(buf))
}

func BenchmarkEncode(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Encode(uint64(i) * 2654435761)
	}
}

func BenchmarkAppendEncode(b *testing.B) {
	buf := make([]byte, 0, MaxLen)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf = AppendEncode(buf[:0], uint64(i)*2654435761)
	}
}

func BenchmarkDecode(b *testing.B) {
	s := Encode(math.MaxUint64 / 3)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(s)
	}
}
