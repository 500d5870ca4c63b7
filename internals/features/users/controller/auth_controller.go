package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"

	"chapterhub_backend/internals/configs"
	"chapterhub_backend/internals/features/users/dto"
	"chapterhub_backend/internals/features/users/model"
	helper "chapterhub_backend/internals/helpers"
)

var validateAuth = validator.New()

const accessTokenTTL = 24 * time.Hour

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// 🟢 POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing model.UserModel
	if err := ctrl.DB.Where("user_email = ?", email).First(&existing).Error; err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] check existing user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		UserEmail:        email,
		UserPasswordHash: string(hash),
		UserFullName:     req.FullName,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		log.Printf("[ERROR] create user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	return ctrl.issueToken(c, &user, fiber.StatusCreated, "Account created")
}

// 🟢 POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user model.UserModel
	if err := ctrl.DB.Where("user_email = ?", email).First(&user).Error; err != nil {
		// same message for unknown email and wrong password
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if user.UserPasswordHash == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "This account uses Google sign-in")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	return ctrl.issueToken(c, &user, fiber.StatusOK, "Signed in")
}

// 🟢 POST /api/auth/google
// Verifies a Google ID token, then finds or creates the matching account.
func (ctrl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Google sign-in is not configured")
	}

	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claims, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Failed to decode Google token")
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google token has no email")
	}

	var user model.UserModel
	err = ctrl.DB.Where("user_email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := claims.Sub
		user = model.UserModel{
			UserEmail:    email,
			UserFullName: claims.Name,
			UserGoogleID: &sub,
		}
		if err := ctrl.DB.Create(&user).Error; err != nil {
			log.Printf("[ERROR] create google user: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
		}
	case err != nil:
		log.Printf("[ERROR] load google user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	default:
		if user.UserGoogleID == nil {
			sub := claims.Sub
			user.UserGoogleID = &sub
			if err := ctrl.DB.Model(&user).Update("user_google_id", sub).Error; err != nil {
				log.Printf("[WARN] link google id for %s: %v", email, err)
			}
		}
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	return ctrl.issueToken(c, &user, fiber.StatusOK, "Signed in with Google")
}

// 🟢 GET /api/auth/me  (behind AuthMiddleware)
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "Session loaded", dto.ToSessionResponse(&user))
}

func (ctrl *AuthController) issueToken(c *fiber.Ctx, user *model.UserModel, status int, message string) error {
	if configs.JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is empty")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"role":    user.UserRole,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		log.Printf("[ERROR] sign token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	resp := dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(accessTokenTTL.Seconds()),
		Session:     dto.ToSessionResponse(user),
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    resp,
	})
}
