package response

// 业务状态码，随 HTTP 200 返回，调用方按码分支处理
const (
	CodeOK              = 0   // 成功
	CodeBadRequest      = 400 // 参数错误
	CodeUnauthorized    = 401 // 未登录或令牌失效
	CodeNotFound        = 404 // 资源不存在
	CodeTooManyRequests = 429 // 触发限流
	CodeInternal        = 500 // 服务内部错误
)
