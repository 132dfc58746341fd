package middlewares

import (
	"strings"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/constants"
	"facegate.io/application/interfaces"
	biometric_usecases "facegate.io/application/usecases/biometric"
	"facegate.io/infrastructure/auth"
)

// SessionAuthMiddleware guards routes that require a live face-auth session.
// The bearer token is decoded, then checked against the session store so
// revocation takes effect immediately.
func SessionAuthMiddleware(ctx *interfaces.ApplicationContext[any], authHeader string) (*interfaces.ApplicationContext[any], bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		apperrors.AuthenticationError(ctx.Ctx, "provide a session token", ctx.DeviceID)
		return nil, false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := auth.DecodeSessionToken(token)
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, "invalid session token", ctx.DeviceID)
		return nil, false
	}

	session, err := biometric_usecases.Engine.ValidateSession(claims.SessionID)
	if err != nil {
		server_code := constants.SESSION_EXPIRED
		apperrors.CustomError(ctx.Ctx, "session has expired. verify your face again.", &server_code, ctx.DeviceID)
		return nil, false
	}

	ctx.SetContextData("UserID", session.UserID)
	ctx.SetContextData("SessionID", session.ID)
	return ctx, true
}
