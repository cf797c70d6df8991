// Package apierror 提供带错误码的错误类型，用于 CLI 和 HTTP 两种调用方式的统一错误处理
//
// 错误分为以下几类（可在代码中直接使用）：
//
//   - ErrInvalidInput: 参数缺失或不合法，不会调用任何外部命令
//   - ErrExternalTool: qemu-img 不存在、以非 0 退出码结束，或输出无法解析
//   - ErrInternal: 其他未分类的错误
//
// JSON 格式：
//
//	{
//	    "errors": [
//	        {
//	            "code": "InvalidInput",
//	            "message": "No size defined, creating a disk image requires a size"
//	        }
//	    ],
//	    "requestID": "run-1234567890"
//	}
//
// 使用示例：
//
//	// 基于预定义的错误派生新错误，保留 Code 和 HTTPStatus
//	err := apierror.WrapError(apierror.ErrExternalTool, "unable to read virtual disk size", rawErr)
//
//	// 判断错误类型
//	if errors.Is(err, apierror.ErrExternalTool) { ... }
package apierror
