package serverutils

type Response[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type ValidationResponse struct {
	Success bool          `json:"success"`
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Errors  []ErrorDetail `json:"errors"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

func ValidationErrorResponse(details []ErrorDetail) ValidationResponse {
	message := ErrBadRequest.Error()
	if len(details) > 0 {
		message = details[0].Message
	}
	return ValidationResponse{
		Success: false,
		Code:    400,
		Message: message,
		Errors:  details,
	}
}
