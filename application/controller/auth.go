package controller

import (
	"net/http"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/constants"
	"facegate.io/application/controller/dto"
	"facegate.io/application/interfaces"
	biometric_usecases "facegate.io/application/usecases/biometric"
	server_response "facegate.io/infrastructure/serverResponse"
	"facegate.io/infrastructure/validator"
)

// VerifyFallbackPassword authenticates with the fallback password when
// face verification is unavailable. Shares the lockout window with the
// biometric path.
func VerifyFallbackPassword(ctx *interfaces.ApplicationContext[dto.FallbackVerifyDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	result, err := biometric_usecases.Engine.VerifyFallbackPassword(requestCtx(ctx.Ctx), ctx.Body.UserID, ctx.Body.Password, attemptMetadata(ctx))
	if err != nil {
		if err == biometric_usecases.ErrFallbackNotAllowed {
			apperrors.ForbiddenError(ctx.Ctx, err.Error(), &constants.FALLBACK_NOT_ALLOWED, ctx.DeviceID)
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	if !result.Success {
		respondVerificationFailure(ctx.Ctx, result, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "fallback verification succeeded", result, nil, nil, nil)
}

// RevokeSession kills an active session ahead of its expiry. The caller must
// hold a valid session token; the session being revoked must belong to them.
func RevokeSession(ctx *interfaces.ApplicationContext[dto.RevokeSessionDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	reason := ctx.Body.Reason
	if reason == "" {
		reason = "user_requested"
	}

	userID := ctx.GetStringContextData("UserID")
	err := biometric_usecases.Engine.RevokeSession(requestCtx(ctx.Ctx), userID, ctx.Body.SessionID, reason)
	if err != nil {
		if err == biometric_usecases.ErrSessionNotFound {
			apperrors.NotFoundError(ctx.Ctx, err.Error(), &ctx.DeviceID)
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "session revoked", nil, nil, nil, nil)
}
