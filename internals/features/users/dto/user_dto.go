package dto

import (
	"github.com/google/uuid"

	"chapterhub_backend/internals/constants"
	"chapterhub_backend/internals/features/users/model"
)

//
// ========= Request DTO =========
//

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

//
// ========= Response DTO =========
//

// SessionResponse is what /auth/me returns: the profile plus the
// store-derived capability set, so clients never hard-code role checks.
type SessionResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	Capabilities []string  `json:"capabilities"`
}

type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	Session     SessionResponse `json:"session"`
}

func ToSessionResponse(m *model.UserModel) SessionResponse {
	return SessionResponse{
		UserID:       m.UserID,
		Email:        m.UserEmail,
		FullName:     m.UserFullName,
		Role:         m.UserRole,
		Capabilities: constants.CapabilitiesFor(m.UserRole),
	}
}
