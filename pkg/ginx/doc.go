// Package ginx 提供 gin 框架的 handler 适配器，负责参数绑定和 JSON 响应渲染
//
// 支持两种 handler 函数签名：
//
//	// 无参数，只有返回值
//	func(c *gin.Context) resp
//
//	// 有参数，有返回值，有 error
//	func(c *gin.Context, args *Args) (resp, error)
//
// 错误为 *apierror.Error 时使用其 HTTPStatus 作为状态码，并渲染为 apierror.ErrorResponse；
// requestID 取自 SetRequestID 设置的值。
//
// 使用示例：
//
//	router := gin.New()
//	router.POST("/images/reconcile", ginx.Adapt5(func(c *gin.Context, req *entity.ReconcileRequest) (*entity.Result, error) {
//	    ...
//	}))
//	router.GET("/healthz", ginx.Adapt2(func(c *gin.Context) string {
//	    return "ok"
//	}))
package ginx
