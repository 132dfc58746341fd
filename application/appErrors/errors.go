package apperrors

import (
	"net/http"

	"facegate.io/infrastructure/logger"
	server_response "facegate.io/infrastructure/serverResponse"
)

func NotFoundError(ctx interface{}, message string, deviceID *string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil, nil, deviceID)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error, deviceID string) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "Payload validation failed 🙄", nil, *errMessages, nil, &deviceID)
}

func AuthenticationError(ctx interface{}, message string, deviceID string) {
	server_response.Responder.Respond(ctx, http.StatusUnauthorized, message, nil, nil, nil, &deviceID)
}

func ClientError(ctx interface{}, msg string, errs []error, responseCode *uint, deviceID string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, nil, errs, responseCode, &deviceID)
}

func CustomError(ctx interface{}, msg string, responseCode *uint, deviceID string) {
	server_response.Responder.Respond(ctx, http.StatusTeapot, msg, nil, nil, responseCode, &deviceID)
}

func ForbiddenError(ctx interface{}, msg string, responseCode *uint, deviceID string) {
	server_response.Responder.Respond(ctx, http.StatusForbidden, msg, nil, nil, responseCode, &deviceID)
}

func ErrorProcessingPayload(ctx interface{}, deviceID *string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Abnormal payload passed 🤨", nil, nil, nil, deviceID)
}

func MalformedHeader(ctx interface{}, deviceID *string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Malformed header detected 🤔", nil, nil, nil, deviceID)
}

func UnknownError(ctx interface{}, err error, responseCode *uint, deviceID string) {
	logger.Error("unknown error occured", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusBadRequest, err.Error(), nil, nil, responseCode, &deviceID)
}

func FatalServerError(ctx interface{}, err error, deviceID string) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError,
		"Omo! Our service is temporarily down 😢. Our team is working to fix it. Please check back later.", nil, nil, nil, &deviceID)
}
