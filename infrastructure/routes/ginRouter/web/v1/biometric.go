package routev1

import (
	"strconv"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/controller"
	"facegate.io/application/controller/dto"
	"facegate.io/application/interfaces"
	"github.com/gin-gonic/gin"
)

func BiometricRouter(router *gin.RouterGroup) {
	biometricRouter := router.Group("/biometric")
	{
		biometricRouter.POST("/enroll", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FaceCaptureDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, appContext.GetHeader("X-Device-Id"))
				return
			}
			controller.EnrollFace(&interfaces.ApplicationContext[dto.FaceCaptureDTO]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       appContext.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
				UserAgent:  appContext.UserAgent,
			})
		})

		biometricRouter.POST("/verify", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FaceCaptureDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, appContext.GetHeader("X-Device-Id"))
				return
			}
			controller.VerifyFace(&interfaces.ApplicationContext[dto.FaceCaptureDTO]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       appContext.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
				UserAgent:  appContext.UserAgent,
			})
		})

		biometricRouter.GET("/settings", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			appContext.SetContextData("UserID", ctx.Query("user_id"))
			controller.GetAuthSettings(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		biometricRouter.PATCH("/settings", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.UpdateAuthSettingsDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, appContext.GetHeader("X-Device-Id"))
				return
			}
			controller.UpdateAuthSettings(&interfaces.ApplicationContext[dto.UpdateAuthSettingsDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		biometricRouter.GET("/templates", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			appContext.SetContextData("UserID", ctx.Query("user_id"))
			controller.ListFaceTemplates(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		biometricRouter.DELETE("/templates/:id", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			appContext.SetContextData("UserID", ctx.Query("user_id"))
			appContext.SetContextData("TemplateID", ctx.Param("id"))
			controller.DeactivateFaceTemplate(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		biometricRouter.GET("/attempts", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			appContext.SetContextData("UserID", ctx.Query("user_id"))
			if cursor := ctx.Query("last_id"); cursor != "" {
				appContext.SetContextData("LastID", cursor)
			}
			if size, err := strconv.Atoi(ctx.Query("page_size")); err == nil {
				appContext.SetContextData("PageSize", size)
			}
			controller.ListAuthAttempts(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
