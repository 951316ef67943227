package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		auth := v1.Group("/auth")
		{
			auth.POST("/login", c.UserHandler.Login)
			auth.POST("/refresh", c.UserHandler.Refresh)
		}

		// Public read surface. GET /posts/:id serves drafts too; the id is
		// effectively an unlisted share link.
		posts := v1.Group("/posts")
		{
			posts.GET("", c.PostHandler.ListPublished)
			posts.GET("/most-read", c.PostHandler.MostRead)
			posts.GET("/:id", c.PostHandler.Get)
			posts.POST("/:id/view", c.PostHandler.RecordView)
		}

		media := v1.Group("/media")
		{
			media.GET("/galleries/:name", c.MediaHandler.Gallery)
		}

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(c.JWTManager))
		{
			authed.GET("/users/me", c.UserHandler.Me)
			authed.GET("/users/me/preferences", c.UserHandler.GetPreferences)
			authed.PUT("/users/me/preferences", c.UserHandler.UpdatePreferences)

			authed.POST("/posts", c.PostHandler.Create)
			authed.PUT("/posts/:id", c.PostHandler.Update)
			authed.DELETE("/posts/:id", c.PostHandler.Delete)
			authed.POST("/posts/:id/images", c.PostHandler.UploadImages)

			admin := authed.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.GET("/posts", c.PostHandler.ListAll)
			}
		}
	}

	return router
}

// healthCheckHandler reports dependency health. Redis being down degrades
// the response but does not fail it; the feed still serves from Postgres.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		status := gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		}

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status["status"] = "unavailable"
			status["database"] = err.Error()
			ctx.JSON(http.StatusServiceUnavailable, status)
			return
		}

		if err := c.Cache.Ping(checkCtx); err != nil {
			status["status"] = "degraded"
			status["cache"] = err.Error()
		}

		response.Success(ctx, http.StatusOK, status)
	}
}
