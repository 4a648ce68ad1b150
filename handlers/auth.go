package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/Charlydk/Portal-GTR-sub000/config"
	"github.com/Charlydk/Portal-GTR-sub000/database"
	"github.com/Charlydk/Portal-GTR-sub000/middleware"
	"github.com/Charlydk/Portal-GTR-sub000/models"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges analyst credentials for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Datos de acceso inválidos")
		return
	}

	var analyst models.Analyst
	if err := database.GetDB().Where("email = ?", req.Email).First(&analyst).Error; err != nil {
		writeError(w, http.StatusUnauthorized, "Email o contraseña incorrectos")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(analyst.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Email o contraseña incorrectos")
		return
	}

	if !analyst.Active {
		writeError(w, http.StatusBadRequest, "Usuario inactivo. Contacte al administrador.")
		return
	}

	token, err := middleware.GenerateToken(&analyst, h.config.JWTExpiration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudo generar el token")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

type registerRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	FirstName string      `json:"nombre" validate:"required"`
	LastName  string      `json:"apellido" validate:"required"`
	BmsID     int         `json:"bms_id" validate:"required"`
	Password  string      `json:"password" validate:"required,min=5"`
	Role      models.Role `json:"role" validate:"required,oneof=ANALISTA SUPERVISOR RESPONSABLE"`
}

// Register creates an analyst account. Route is gated to supervisor roles.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Datos de registro inválidos")
		return
	}

	db := database.GetDB()

	var count int64
	db.Model(&models.Analyst{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		writeError(w, http.StatusBadRequest, "El email ya está registrado.")
		return
	}
	db.Model(&models.Analyst{}).Where("bms_id = ?", req.BmsID).Count(&count)
	if count > 0 {
		writeError(w, http.StatusBadRequest, "El BMS ID ya existe.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudo crear la cuenta")
		return
	}

	analyst := models.Analyst{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BmsID:        req.BmsID,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
		Active:       true,
	}

	if err := db.Create(&analyst).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudo crear la cuenta")
		return
	}

	writeJSON(w, http.StatusCreated, &analyst)
}

// Me returns the authenticated analyst.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	analyst := middleware.GetAnalystFromContext(r.Context())
	if analyst == nil {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}
	writeJSON(w, http.StatusOK, analyst)
}
