package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/bluecilantro/catering-api/initializers"
	"github.com/bluecilantro/catering-api/models"
	"github.com/bluecilantro/catering-api/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12

	msgInvalidInput       = "invalid input"
	msgInvalidCredentials = "invalid email or password"
	msgPasswordTooShort   = "password must be at least 8 characters"
	msgPasswordMismatch   = "passwords do not match"
	msgPasswordAlreadySet = "password has already been set"
	msgTokenError         = "failed to generate token"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(admin models.AdminUser) (string, error) {
	expiryDays := services.Cfg.SessionExpiryDays
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": admin.ID,
		"email":   admin.Email,
		"role":    "admin",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * time.Duration(expiryDays)).Unix(),
	})

	return token.SignedString([]byte(services.Cfg.JWTSecret))
}

func findAdminByEmail(email string) (models.AdminUser, error) {
	var admin models.AdminUser
	result := initializers.DB.Where("email = ?", email).First(&admin)
	return admin, result.Error
}

// CheckEmail tells the login page whether an account still needs its
// password set. Unknown emails get the same shape as known ones so the
// endpoint cannot be used to enumerate accounts.
func CheckEmail(ctx *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	admin, err := findAdminByEmail(body.Email)
	if err != nil {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"exists": false, "requiresPasswordSetup": false})
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"exists":                true,
		"requiresPasswordSetup": admin.MustSetPassword || admin.PasswordHash == "",
	})
}

// SetupPassword sets the initial password for a seeded admin account. It
// refuses to overwrite an account that already has a password.
func SetupPassword(ctx *gin.Context) {
	var body struct {
		Email           string `json:"email" binding:"required,email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if len(body.Password) < 8 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgPasswordTooShort)
		return
	}
	if body.Password != body.ConfirmPassword {
		sendErrorResponse(ctx, http.StatusBadRequest, msgPasswordMismatch)
		return
	}

	admin, err := findAdminByEmail(body.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if !admin.MustSetPassword && admin.PasswordHash != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgPasswordAlreadySet)
		return
	}

	hashedPassword, err := hashPassword(body.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "failed to hash password")
		return
	}

	if result := initializers.DB.Model(&admin).Updates(map[string]any{
		"password_hash":     hashedPassword,
		"must_set_password": false,
	}); result.Error != nil {
		log.Println("Password setup error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "failed to save password")
		return
	}

	tokenString, err := generateJWT(admin)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgTokenError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString, "email": admin.Email})
}

// Login authenticates an admin. Accounts that have never set a password are
// redirected to the setup flow instead of being rejected outright.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	admin, err := findAdminByEmail(loginData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if admin.MustSetPassword || admin.PasswordHash == "" {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"requiresPasswordSetup": true})
		return
	}

	if err := comparePasswords(admin.PasswordHash, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(admin)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgTokenError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString, "email": admin.Email})
}
