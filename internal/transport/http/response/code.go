package response

import "net/http"

// 业务码直接基于 HTTP 语义
const (
	CodeOK           = 0
	CodeCreated      = 201
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

// CodeMsgMap 集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeOK:           "OK",
	CodeCreated:      "Created",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeConflict:     "Conflict",
	CodeServerError:  "Internal Server Error",
}

// HTTPStatus 业务码到 HTTP 状态码
func HTTPStatus(code int) int {
	switch {
	case code == CodeOK:
		return http.StatusOK
	case code >= 100 && code < 600:
		return code
	default:
		return http.StatusInternalServerError
	}
}
