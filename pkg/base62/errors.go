package base62

import "errors"

// 解码相关错误。
var (
	// ErrEmptyInput 输入字符串为空。
	ErrEmptyInput = errors.New("base62: empty input")

	// ErrInvalidCharacter 输入包含字母表（0-9A-Za-z）之外的字符。
	ErrInvalidCharacter = errors.New("base62: invalid character")

	// ErrOverflow 解码值超出 uint64 可表示范围。
	ErrOverflow = errors.New("base62: value overflows uint64")
)
