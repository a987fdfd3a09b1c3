package utils

import "github.com/gin-gonic/gin"

// JSONResponse defines the uniform structure for API responses. Kind carries
// the machine-checkable failure classification and is empty on success.
type JSONResponse struct {
	Code    int         `json:"code"`
	Kind    string      `json:"kind,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, kind Kind, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Kind:    string(kind),
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, 200, 0, "", "success", data)
}

// Error returns an error response with an explicit status and kind.
func Error(ctx *gin.Context, status int, code int, kind Kind, message string) {
	Respond(ctx, status, code, kind, message, nil)
}

// Fail renders a typed AppError, deriving the HTTP status from its kind.
func Fail(ctx *gin.Context, err *AppError) {
	Error(ctx, err.Kind.HTTPStatus(), err.Code, err.Kind, err.Message)
}
