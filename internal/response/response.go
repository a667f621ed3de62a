package response

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ripplelabs/ripple-api/pkg/errors"
	"github.com/ripplelabs/ripple-api/pkg/i18n"
)

const localizerContextKey = "__response_localizer"

// ProvideResponseLocalizer stores the message localizer in the request context
// so APIError can answer in the caller's language.
func ProvideResponseLocalizer(l *i18n.Localizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localizerContextKey, l)
	}
}

type Meta struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Response struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

func NewResponse(code int, message string, data any) Response {
	return Response{
		Meta: Meta{
			Code:    code,
			Message: message,
		},
		Data: data,
	}
}

func APISuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewResponse(http.StatusOK, "ok", data))
	c.Abort()
}

func APIError(c *gin.Context, err error) {
	httpCode := http.StatusInternalServerError
	messageCode := i18n.ERROR_INTERNAL

	var ce *errors.CustomizedError
	if stderrors.As(err, &ce) {
		httpCode = ce.HTTPCode()
		messageCode = ce.MessageCode()
	}

	if httpCode >= http.StatusInternalServerError {
		slog.Error("api error", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	}

	message := messageCode
	if l, ok := c.Get(localizerContextKey); ok {
		if localizer, ok := l.(*i18n.Localizer); ok {
			message = localizer.Get(c.GetHeader("Accept-Language"), messageCode)
		}
	}

	c.JSON(httpCode, NewResponse(httpCode, message, nil))
	c.Abort()
}
