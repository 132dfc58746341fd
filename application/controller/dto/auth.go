package dto

type FallbackVerifyDTO struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RevokeSessionDTO struct {
	SessionID string `json:"session_id" validate:"required"`
	Reason    string `json:"reason" validate:"omitempty,max=200"`
}
