// Package types 定义 streamio 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 streamio 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - ids.go        - StreamID
//   - enums.go      - Direction, EndpointState
//   - connection.go - ConnInfo
package types
