// Package base62 提供 64 位整数的 base62 文本编解码。
//
// 字母表按数字、大写字母、小写字母排列（0-9A-Za-z），
// 与数值大小顺序一致：等长编码之间按字节比较即按数值比较。
// 注意编码不是跨长度保序的——不同长度的编码直接字典序比较无意义，
// 定宽场景请用 AppendEncode 自行左侧补 '0'。
//
// uint64 的编码结果最长 [MaxLen]（11）个字符。
//
//	s := base62.Encode(id)          // "1Hc9DnXmmYV"
//	id, err := base62.Decode(s)
//
// 解码在输入为空、出现字母表之外的字符、或数值超出 64 位时失败。
package base62
