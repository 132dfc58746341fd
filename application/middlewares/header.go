package middlewares

import (
	"errors"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/interfaces"
	"facegate.io/infrastructure/useragent"
)

// UserAgentMiddleware requires a User-Agent and X-Device-Id on every request
// and captures the parsed device details on the request context. They end up
// on the attempt ledger rows.
func UserAgentMiddleware(ctx *interfaces.ApplicationContext[any], clientIP string) (*interfaces.ApplicationContext[any], bool) {
	agent := ctx.GetHeader("User-Agent")
	if agent == nil {
		apperrors.ClientError(ctx.Ctx, "user agent header missing", []error{errors.New("user agent header missing")}, nil, "")
		return nil, false
	}
	agentDetails := useragent.ParseUserAgent(*agent)
	ctx.UserAgent = *agent
	ctx.DeviceName = agentDetails.Name

	deviceID := ctx.GetHeader("X-Device-Id")
	if deviceID == nil || *deviceID == "" {
		apperrors.MalformedHeader(ctx.Ctx, nil)
		return nil, false
	}
	ctx.DeviceID = *deviceID
	ctx.SetContextData("ClientIP", clientIP)
	return ctx, true
}
