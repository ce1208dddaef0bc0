package response

// AppError 业务错误包装，携带对外提示与底层原因
type AppError struct {
	Code    int    // 业务状态码
	Message string // 对外提示消息
	Err     error  // 底层错误，仅用于日志
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap 支持 errors.Is / errors.As 链式判断
func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 把底层错误包装为业务错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
