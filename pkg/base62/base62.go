package base62

import (
	"fmt"
	"math"
)

// MaxLen uint64 编码后的最大长度（字节）。
const MaxLen = 11

// alphabet 编码字母表：数字、大写、小写，升序排列以保持数值序。
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const base = uint64(len(alphabet))

// invalidDigit 解码表中标记非法字符的哨兵值。
const invalidDigit = 0xFF

// decodeTable 字符到数值的查找表，非法字符为 invalidDigit。
var decodeTable = buildDecodeTable()

func buildDecodeTable() (t [256]byte) {
	for i := range t {
		t[i] = invalidDigit
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = byte(i)
	}
	return t
}

// Encode 将 v 编码为 base62 字符串（1 到 [MaxLen] 个字符，无前导 '0'）。
func Encode(v uint64) string {
	var buf [MaxLen]byte
	i := MaxLen
	for {
		i--
		buf[i] = alphabet[v%base]
		v /= base
		if v == 0 {
			break
		}
	}
	return string(buf[i:])
}

// AppendEncode 将 v 的编码追加到 dst 并返回结果，热路径可复用缓冲避免分配。
func AppendEncode(dst []byte, v uint64) []byte {
	var buf [MaxLen]byte
	i := MaxLen
	for {
		i--
		buf[i] = alphabet[v%base]
		v /= base
		if v == 0 {
			break
		}
	}
	return append(dst, buf[i:]...)
}

// Decode 解析 base62 字符串为 uint64。
//
// 失败情形：
//   - 空输入返回 [ErrEmptyInput]
//   - 字母表之外的字符返回 [ErrInvalidCharacter]（附位置信息）
//   - 数值超出 64 位返回 [ErrOverflow]
//
// 允许前导 '0'（"007" 解码为 7），因此 Decode(Encode(v)) == v
// 恒成立，而 Encode(Decode(s)) == s 不一定成立。
func Decode(s string) (uint64, error) {
	if s == "" {
		return 0, ErrEmptyInput
	}

	var v uint64
	for i := 0; i < len(s); i++ {
		d := decodeTable[s[i]]
		if d == invalidDigit {
			return 0, fmt.Errorf("%w: %q at index %d", ErrInvalidCharacter, s[i], i)
		}
		if v > (math.MaxUint64-uint64(d))/base {
			return 0, ErrOverflow
		}
		v = v*base + uint64(d)
	}
	return v, nil
}
