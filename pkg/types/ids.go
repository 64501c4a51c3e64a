package types

import "strconv"

// ============================================================================
//                              StreamID - 流标识
// ============================================================================

// StreamID 流唯一标识符
//
// 在同一个会话内唯一，端点生命周期内不可变。
type StreamID uint64

// String 返回 StreamID 的字符串表示
func (id StreamID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
