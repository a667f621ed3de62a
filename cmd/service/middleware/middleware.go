package middleware

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ripplelabs/ripple-api/internal/core"
	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/internal/response"
	"github.com/ripplelabs/ripple-api/pkg/errors"
	"github.com/ripplelabs/ripple-api/pkg/i18n"
	"github.com/ripplelabs/ripple-api/pkg/security"
)

func I18n() gin.HandlerFunc {
	var allowList []string
	for k := range i18n.ALLOW_LANG {
		allowList = append(allowList, k)
	}
	l := i18n.NewLocalizer(allowList...)

	return response.ProvideResponseLocalizer(l)
}

// RecordRequests counts every finished request by route template and status.
func RecordRequests(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		core.Metrics().CountAPIRequest(path, strconv.Itoa(c.Writer.Status()))
	}
}

const AUTH_TOKEN_HEADER_KEY = "X-Authorization"

// Authorization validates the signed session token and stores its claims for
// the logic layer.
func Authorization(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue := c.GetHeader(AUTH_TOKEN_HEADER_KEY)
		if tokenValue == "" {
			response.APIError(c, errors.New("middleware.Authorization.nil", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized))
			return
		}

		claims, err := security.VerifyToken(tokenValue, core.Cfg().Security.TokenSecret)
		if err != nil {
			response.APIError(c, errors.New("middleware.Authorization.VerifyToken", i18n.ERROR_INVALID_TOKEN, err).Code(http.StatusUnauthorized))
			return
		}

		if claims.ExpireAt < time.Now().Unix() {
			response.APIError(c, errors.New("middleware.Authorization.expired", i18n.ERROR_INVALID_TOKEN, nil).Code(http.StatusUnauthorized))
			return
		}

		c.Set(v1.TOKEN_CONTEXT_KEY, *claims)
	}
}

// AuthorizationFromQuery carries the token in the query string, the websocket
// handshake cannot set headers from the browser.
func AuthorizationFromQuery(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue := c.Query("token")
		if tokenValue == "" {
			response.APIError(c, errors.New("middleware.AuthorizationFromQuery.nil", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized))
			return
		}

		claims, err := security.VerifyToken(tokenValue, core.Cfg().Security.TokenSecret)
		if err != nil {
			response.APIError(c, errors.New("middleware.AuthorizationFromQuery.VerifyToken", i18n.ERROR_INVALID_TOKEN, err).Code(http.StatusUnauthorized))
			return
		}

		if claims.ExpireAt < time.Now().Unix() {
			response.APIError(c, errors.New("middleware.AuthorizationFromQuery.expired", i18n.ERROR_INVALID_TOKEN, nil).Code(http.StatusUnauthorized))
			return
		}

		c.Set(v1.TOKEN_CONTEXT_KEY, *claims)
	}
}

// VerifySpaceIDPermission resolves the caller's membership of :spaceid and
// checks the role against the requested permission.
func VerifySpaceIDPermission(core *core.Core, permission string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		spaceID, _ := ctx.Params.Get("spaceid")

		claims, _ := v1.InjectTokenClaim(ctx)

		result, err := core.Store().UserSpaceStore().Get(ctx, claims.User, spaceID)
		if err != nil && err != sql.ErrNoRows {
			response.APIError(ctx, errors.New("middleware.VerifySpaceIDPermission.UserSpaceStore.Get", i18n.ERROR_INTERNAL, err))
			return
		}

		if result == nil {
			response.APIError(ctx, errors.New("middleware.VerifySpaceIDPermission.UserSpaceStore.Get.nil", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden))
			return
		}

		claims.Fields["role"] = result.Role

		if !core.Srv().RBAC().CheckPermission(result.Role, permission) {
			response.APIError(ctx, errors.New("middleware.VerifySpaceIDPermission.CheckPermission", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden))
			return
		}

		ctx.Set(v1.SPACEID_CONTEXT_KEY, spaceID)
	}
}

func Cors(c *gin.Context) {
	method := c.Request.Method
	origin := c.Request.Header.Get("Origin")
	if origin != "" {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Cache-Control, Content-Language, Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	if method == "OPTIONS" {
		c.AbortWithStatus(http.StatusNoContent)
	}
	c.Next()
}

func UseLimit(core *core.Core, operation string, genKeyFunc func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !core.UseLimiter(genKeyFunc(c), operation, 4).Allow() {
			response.APIError(c, errors.New("middleware.limiter", i18n.ERROR_TOO_MANY_REQUESTS, nil).Code(http.StatusTooManyRequests))
		}
	}
}
