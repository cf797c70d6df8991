package apierror

import "net/http"

var (
	// ErrInvalidInput 参数缺失或不合法
	ErrInvalidInput = &Error{
		Code:       "InvalidInput",
		Message:    "The request is missing a required parameter or contains an invalid value.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrExternalTool 外部命令执行失败或输出无法解析
	ErrExternalTool = &Error{
		Code:       "ExternalToolError",
		Message:    "The external disk image tool failed.",
		HTTPStatus: http.StatusBadGateway,
	}

	// ErrInternal 未分类的内部错误，例如文件系统错误
	ErrInternal = &Error{
		Code:       "InternalError",
		Message:    "An internal error has occurred.",
		HTTPStatus: http.StatusInternalServerError,
	}
)
