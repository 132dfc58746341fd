package middlewares

import (
	"facegate.io/application/interfaces"
	"facegate.io/application/middlewares"
	"github.com/gin-gonic/gin"
)

func SessionAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
		authedContext, next := middlewares.SessionAuthMiddleware(appContext, ctx.GetHeader("Authorization"))
		if next {
			ctx.Set("AppContext", authedContext)
			ctx.Next()
		}
	}
}
