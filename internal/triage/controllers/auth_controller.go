package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/c14220110/poliklinik-triage/config"
	"github.com/c14220110/poliklinik-triage/pkg/utils"
)

type AuthController struct {
	accounts map[string]config.StaffAccount
	secret   []byte
	ttl      time.Duration
}

func NewAuthController(accounts []config.StaffAccount, secret []byte, ttl time.Duration) *AuthController {
	byName := make(map[string]config.StaffAccount, len(accounts))
	for _, a := range accounts {
		byName[a.Username] = a
	}
	return &AuthController{accounts: byName, secret: secret, ttl: ttl}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login menangani permintaan login petugas.
func (ac *AuthController) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return respond(c, http.StatusBadRequest, "username and password are required", nil)
	}

	account, ok := ac.accounts[req.Username]
	if !ok {
		return respond(c, http.StatusUnauthorized, "Invalid username or password", nil)
	}
	// Verifikasi password
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return respond(c, http.StatusUnauthorized, "Invalid username or password", nil)
	}

	exp := time.Now().Add(ac.ttl)
	token, err := utils.GenerateJWTToken(ac.secret, account.Username, account.Role, exp)
	if err != nil {
		return respond(c, http.StatusInternalServerError, "Failed to generate token", nil)
	}

	return respond(c, http.StatusOK, "Login successful", map[string]interface{}{
		"username":   account.Username,
		"role":       account.Role,
		"token":      token,
		"expires_at": exp.UTC(),
	})
}
