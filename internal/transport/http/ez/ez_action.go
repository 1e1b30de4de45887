package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artisan-market-api/internal/domain"
	resp "artisan-market-api/internal/transport/http/response"
)

// EZ 轻封装：统一绑定、鉴权检查、错误映射
type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, log *zap.Logger) EZ { return EZ{g: g, log: log} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.PostForm 取
)

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// FromErr 业务错误归一：AErr 原样用，domain 分类错误按类映射，其余 500
func FromErr(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	for sentinel, code := range map[error]int{
		domain.ErrInvalid:      resp.CodeBadRequest,
		domain.ErrUnauthorized: resp.CodeUnauthorized,
		domain.ErrForbidden:    resp.CodeForbidden,
		domain.ErrNotFound:     resp.CodeNotFound,
		domain.ErrConflict:     resp.CodeConflict,
	} {
		if errors.Is(err, sentinel) {
			// "invalid argument: xxx" 只保留 xxx
			msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
			return &AErr{Code: code, Msg: msg, Err: err}
		}
	}
	return &AErr{Code: resp.CodeServerError, Err: err}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string   // "GET" | "POST" | "PUT" | "DELETE"
	Path    string   // 例："/auth/login"、"/products/:id/status"
	Binder  Binder   // 绑定方式
	Auth    bool     // 是否要求登录（检查 userId）
	Roles   []string // 限定角色（可选）
	Created bool     // 成功时返回 201
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 鉴权/角色（分组中间件已写入 userId/role）
		if a.Auth || len(a.Roles) > 0 {
			uid := c.GetString("userId")
			if uid == "" {
				c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "unauthorized"))
				return
			}
			if len(a.Roles) > 0 {
				role := c.GetString("role")
				ok := false
				for _, r := range a.Roles {
					if role == r {
						ok = true
						break
					}
				}
				if !ok {
					c.JSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, "forbidden"))
					return
				}
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		// 3) 执行
		out, err := a.Handler(c, &in)

		// 4) 统一错误映射
		if err != nil {
			ae := FromErr(err)
			if ae.Code == resp.CodeServerError {
				if e.log != nil {
					e.log.Error("action failed",
						zap.String("rid", c.GetString("X-Request-ID")),
						zap.String("method", c.Request.Method),
						zap.String("path", c.FullPath()),
						zap.Error(err),
					)
				}
				// 500 不往外漏内部细节
				c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
				return
			}
			c.JSON(resp.HTTPStatus(ae.Code), resp.Error(ae.Code, ae.Error()))
			return
		}
		if a.Created {
			c.JSON(http.StatusCreated, resp.Created(out))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
