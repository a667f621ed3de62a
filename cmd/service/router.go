package service

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ripplelabs/ripple-api/cmd/service/handler"
	"github.com/ripplelabs/ripple-api/cmd/service/middleware"
	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/internal/core/srv"
	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/internal/response"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)
	core.Plugins.RegisterHTTPEngine(core.HttpEngine())

	core.HttpEngine().Run(core.Cfg().Addr)
}

func GetIPLimitBuilder(core *core.Core) func(key string) gin.HandlerFunc {
	return func(key string) gin.HandlerFunc {
		return middleware.UseLimit(core, key, func(c *gin.Context) string {
			return key + ":" + c.ClientIP()
		})
	}
}

func GetUserLimitBuilder(core *core.Core) func(key string) gin.HandlerFunc {
	return func(key string) gin.HandlerFunc {
		return middleware.UseLimit(core, key, func(c *gin.Context) string {
			token, _ := v1.InjectTokenClaim(c)
			return key + ":" + token.User
		})
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	ipLimit := GetIPLimitBuilder(s.Core)
	userLimit := GetUserLimitBuilder(s.Core)

	s.Engine.Use(middleware.I18n())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.RecordRequests(s.Core))

	s.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := s.Engine.Group("/api/v1")
	{
		apiV1.GET("/mode", func(c *gin.Context) {
			response.APISuccess(c, s.Core.Plugins.Name())
		})

		apiV1.POST("/register", ipLimit("register"), s.Register)
		apiV1.POST("/login", ipLimit("login"), s.Login)
		apiV1.GET("/connect", middleware.AuthorizationFromQuery(s.Core), handler.Websocket(s.Core))

		authed := apiV1.Group("")
		authed.Use(middleware.Authorization(s.Core))

		user := authed.Group("/user")
		{
			user.GET("/info", s.GetUser)
			user.PUT("/profile", userLimit("profile"), s.UpdateUserProfile)
		}

		journal := authed.Group("/journal")
		{
			journal.POST("", userLimit("create_journal"), s.CreateJournal)
			journal.GET("/list", s.ListMyJournals)
			journal.GET("/:journalid", s.GetJournal)
			journal.PUT("/:journalid", s.UpdateJournal)
			journal.DELETE("/:journalid", s.DeleteJournal)

			note := journal.Group("/:journalid/note")
			{
				note.GET("/list", s.ListNotes)
				note.POST("", userLimit("create_note"), s.AddNote)
				note.PUT("/:noteid/star", s.StarNote)
			}
		}

		authed.GET("/discover", s.ListDiscover)

		space := authed.Group("/space")
		{
			space.GET("/list", s.ListUserSpaces)
			space.POST("", userLimit("modify_space"), s.CreateSpace)
			space.POST("/join", userLimit("join_space"), s.JoinSpace)

			space.GET("/:spaceid/journal/list", middleware.VerifySpaceIDPermission(s.Core, srv.PermissionView), s.ListSpaceJournals)
			space.DELETE("/:spaceid/leave", middleware.VerifySpaceIDPermission(s.Core, srv.PermissionView), s.LeaveSpace)
			space.DELETE("/:spaceid", middleware.VerifySpaceIDPermission(s.Core, srv.PermissionManage), s.DeleteSpace)
		}

		notification := authed.Group("/notification")
		{
			notification.GET("/list", s.ListNotifications)
			notification.GET("/unread", s.NotificationUnreadCount)
			notification.PUT("/read/all", s.MarkAllNotificationsRead)
			notification.PUT("/:notificationid/read", s.MarkNotificationRead)
			notification.GET("/:notificationid/journal", s.ResolveNotificationJournal)
		}

		tools := authed.Group("/tools")
		{
			tools.Use(userLimit("tools"))
			tools.GET("/prompt/daily", s.DailyPrompt)
			tools.POST("/tags/suggest", s.SuggestTags)
		}
	}
}
