package controller

import (
	"context"
	"errors"
	"net/http"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/constants"
	"facegate.io/application/controller/dto"
	"facegate.io/application/interfaces"
	biometric_usecases "facegate.io/application/usecases/biometric"
	"facegate.io/application/utils"
	server_response "facegate.io/infrastructure/serverResponse"
	"facegate.io/infrastructure/validator"
	"github.com/gin-gonic/gin"
)

func attemptMetadata[T any](ctx *interfaces.ApplicationContext[T]) biometric_usecases.AttemptMetadata {
	meta := biometric_usecases.AttemptMetadata{}
	if ctx.DeviceName != "" {
		meta.DeviceInfo = &ctx.DeviceName
	}
	if ctx.UserAgent != "" {
		meta.UserAgent = &ctx.UserAgent
	}
	if ip := ctx.GetStringContextData("ClientIP"); ip != "" {
		meta.IPAddress = &ip
	}
	return meta
}

// EnrollFace registers a new face template from a capture payload.
func EnrollFace(ctx *interfaces.ApplicationContext[dto.FaceCaptureDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	result, err := biometric_usecases.Engine.EnrollFace(requestCtx(ctx.Ctx), ctx.Body.UserID, ctx.Body.ToDetectionResult(), attemptMetadata(ctx))
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	if !result.Success {
		switch *result.Error {
		case biometric_usecases.ReasonStoreUnavailable:
			apperrors.FatalServerError(ctx.Ctx, errors.New(*result.Error), ctx.DeviceID)
		case biometric_usecases.ReasonBiometricDisabled:
			apperrors.ForbiddenError(ctx.Ctx, *result.Error, &constants.BIOMETRIC_DISABLED, ctx.DeviceID)
		default:
			apperrors.ClientError(ctx.Ctx, *result.Error, nil, nil, ctx.DeviceID)
		}
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "face enrolled", result, nil, nil, nil)
}

// VerifyFace matches a capture payload against the user's templates.
func VerifyFace(ctx *interfaces.ApplicationContext[dto.FaceCaptureDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	result, err := biometric_usecases.Engine.VerifyFace(requestCtx(ctx.Ctx), ctx.Body.UserID, ctx.Body.ToDetectionResult(), attemptMetadata(ctx))
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	if !result.Success {
		respondVerificationFailure(ctx.Ctx, result, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face verified", result, nil, nil, nil)
}

func respondVerificationFailure(ginCtx interface{}, result *biometric_usecases.VerificationResult, deviceID string) {
	var responseCode *uint
	status := http.StatusUnauthorized
	switch *result.Error {
	case biometric_usecases.ReasonLockedOut:
		responseCode = &constants.ACCOUNT_LOCKED_OUT
		status = http.StatusLocked
	case biometric_usecases.ReasonNoTemplateEnrolled:
		responseCode = &constants.FACE_NOT_ENROLLED
		status = http.StatusPreconditionFailed
	case biometric_usecases.ReasonLivenessFailed:
		responseCode = &constants.SPOOFING_SUSPECTED
	case biometric_usecases.ReasonFallbackNotAllowed:
		responseCode = &constants.FALLBACK_NOT_ALLOWED
		status = http.StatusForbidden
	case biometric_usecases.ReasonBiometricDisabled:
		responseCode = &constants.BIOMETRIC_DISABLED
		status = http.StatusForbidden
	}
	server_response.Responder.Respond(ginCtx, status, "verification failed", result, nil, responseCode, &deviceID)
}

// GetAuthSettings returns the user's effective biometric policy.
func GetAuthSettings(ctx *interfaces.ApplicationContext[any]) {
	userID := ctx.GetStringContextData("UserID")
	if userID == "" {
		apperrors.ClientError(ctx.Ctx, "user_id is required", nil, nil, ctx.DeviceID)
		return
	}
	settings, err := biometric_usecases.Engine.GetSettings(requestCtx(ctx.Ctx), userID)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "auth settings", settings, nil, nil, nil)
}

// UpdateAuthSettings applies a partial policy update.
func UpdateAuthSettings(ctx *interfaces.ApplicationContext[dto.UpdateAuthSettingsDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	settings, err := biometric_usecases.Engine.UpdateSettings(requestCtx(ctx.Ctx), ctx.Body.UserID, ctx.Body.ToPayload())
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "auth settings updated", settings, nil, nil, nil)
}

// ListFaceTemplates lists the user's active templates.
func ListFaceTemplates(ctx *interfaces.ApplicationContext[any]) {
	userID := ctx.GetStringContextData("UserID")
	if userID == "" {
		apperrors.ClientError(ctx.Ctx, "user_id is required", nil, nil, ctx.DeviceID)
		return
	}
	templates, err := biometric_usecases.Engine.ListTemplates(requestCtx(ctx.Ctx), userID)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face templates", templates, nil, nil, nil)
}

// DeactivateFaceTemplate retires a template without deleting it.
func DeactivateFaceTemplate(ctx *interfaces.ApplicationContext[any]) {
	userID := ctx.GetStringContextData("UserID")
	templateID := ctx.GetStringContextData("TemplateID")
	if userID == "" || templateID == "" {
		apperrors.ClientError(ctx.Ctx, "user_id and template id are required", nil, nil, ctx.DeviceID)
		return
	}
	err := biometric_usecases.Engine.DeactivateTemplate(requestCtx(ctx.Ctx), userID, templateID)
	if err != nil {
		if err == biometric_usecases.ErrTemplateNotFound {
			apperrors.NotFoundError(ctx.Ctx, err.Error(), utils.GetStringPointer(ctx.DeviceID))
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face template deactivated", nil, nil, nil, nil)
}

// ListAuthAttempts pages through the user's attempt history.
func ListAuthAttempts(ctx *interfaces.ApplicationContext[any]) {
	userID := ctx.GetStringContextData("UserID")
	if userID == "" {
		apperrors.ClientError(ctx.Ctx, "user_id is required", nil, nil, ctx.DeviceID)
		return
	}
	var lastID *string
	if cursor := ctx.GetStringContextData("LastID"); cursor != "" {
		lastID = &cursor
	}
	pageSize := int64(ctx.GetIntContextData("PageSize"))

	page, err := biometric_usecases.Engine.ListAttempts(requestCtx(ctx.Ctx), userID, pageSize, lastID)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "auth attempts", page, nil, nil, nil)
}

// requestCtx pulls the request-scoped context from the gin context so engine
// calls are cancelled when the client goes away.
func requestCtx(ctx interface{}) context.Context {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		return ginCtx.Request.Context()
	}
	return context.Background()
}
