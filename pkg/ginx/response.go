package ginx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/qimg/pkg/apierror"
)

// renderResponse 渲染 JSON 响应，字符串按纯文本输出
func renderResponse(ctx *gin.Context, response any) {
	switch v := response.(type) {
	case nil:
		ctx.Status(http.StatusNoContent)
	case string:
		ctx.String(http.StatusOK, v)
	default:
		ctx.JSON(http.StatusOK, v)
	}
}

// renderError 渲染错误响应
// 错误链上有 *apierror.Error 时使用其 HTTPStatus，否则使用 statusCode
func renderError(ctx *gin.Context, statusCode int, err error) {
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		apiErr = apierror.NewError(http.StatusText(statusCode), err.Error())
		apiErr.HTTPStatus = statusCode
	}
	if apiErr.HTTPStatus > 0 {
		statusCode = apiErr.HTTPStatus
	}
	ctx.JSON(statusCode, apierror.NewErrorResponse(GetRequestID(ctx), apiErr))
}
