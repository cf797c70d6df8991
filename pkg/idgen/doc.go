// Package idgen 提供递增的运行 ID 生成器
//
// 使用 Sonyflake 算法生成全局唯一且递增的 ID，每次 reconcile 都会分配一个
// 运行 ID（格式：run-{递增数字}），用于日志关联和 HTTP 错误响应中的 requestID。
//
// 使用方式：
//
//	runID, err := idgen.DefaultGenerator().GenerateRunID()
//	// runID: "run-1234567890"
package idgen
