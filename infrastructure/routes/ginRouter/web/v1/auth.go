package routev1

import (
	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/controller"
	"facegate.io/application/controller/dto"
	"facegate.io/application/interfaces"
	middlewares "facegate.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func AuthRouter(router *gin.RouterGroup) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/fallback-verify", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FallbackVerifyDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, appContext.GetHeader("X-Device-Id"))
				return
			}
			controller.VerifyFallbackPassword(&interfaces.ApplicationContext[dto.FallbackVerifyDTO]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       appContext.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
				UserAgent:  appContext.UserAgent,
			})
		})

		authRouter.POST("/revoke-session", middlewares.SessionAuthMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.RevokeSessionDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, appContext.GetHeader("X-Device-Id"))
				return
			}
			controller.RevokeSession(&interfaces.ApplicationContext[dto.RevokeSessionDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
