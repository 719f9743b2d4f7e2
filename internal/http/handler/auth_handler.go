package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ripu1821/mobile-auth-service/internal/http/middleware"
	"github.com/ripu1821/mobile-auth-service/internal/http/response"
	"github.com/ripu1821/mobile-auth-service/internal/repository"
	"github.com/ripu1821/mobile-auth-service/internal/security"
	"github.com/ripu1821/mobile-auth-service/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthServiceInterface
}

func NewAuthHandler(authSvc service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.SignUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if details := validateSignUp(input); len(details) > 0 {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "validation failed", details)
		return
	}

	user, err := h.authSvc.SignUp(r.Context(), input)
	if err != nil {
		writeAuthError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, map[string]any{"user": user})
}

func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var input service.VerifyOtpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if details := validateVerifyOtp(input); len(details) > 0 {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "validation failed", details)
		return
	}

	result, err := h.authSvc.VerifyOtp(r.Context(), input)
	if err != nil {
		writeAuthError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

type logoutRequest struct {
	DeviceUniqueID string `json:"device_unique_id"`
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var input logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(input.DeviceUniqueID) == "" {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "device_unique_id is required", nil)
		return
	}

	// The guard already validated this token; logout blacklists it so the
	// rest of its lifetime is refused too.
	token := middleware.BearerToken(r)
	session, err := h.authSvc.Logout(r.Context(), input.DeviceUniqueID, token)
	if err != nil {
		writeAuthError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, session)
}

type refreshRequest struct {
	DeviceUniqueID string `json:"device_unique_id"`
	RefreshToken   string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var input refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(input.DeviceUniqueID) == "" || strings.TrimSpace(input.RefreshToken) == "" {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "device_unique_id and refresh_token are required", nil)
		return
	}

	pair, err := h.authSvc.RefreshTokens(r.Context(), input.DeviceUniqueID, input.RefreshToken)
	if err != nil {
		writeAuthError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, pair)
}

func validateSignUp(input service.SignUpInput) map[string]string {
	details := map[string]string{}
	if strings.TrimSpace(input.MobileNumber) == "" {
		details["mobile_number"] = "required"
	}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	return details
}

func validateVerifyOtp(input service.VerifyOtpInput) map[string]string {
	details := map[string]string{}
	if strings.TrimSpace(input.MobileNumber) == "" {
		details["mobile_number"] = "required"
	}
	if strings.TrimSpace(input.OTP) == "" {
		details["otp"] = "required"
	}
	if strings.TrimSpace(input.DeviceDetails.DeviceUniqueID) == "" {
		details["device_details.device_unique_id"] = "required"
	}
	return details
}

func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, security.ErrInvalidPhone):
		response.Error(w, r, http.StatusBadRequest, "INVALID_PHONE", "invalid mobile number", nil)
	case errors.Is(err, repository.ErrDuplicateMobileNumber):
		response.Error(w, r, http.StatusConflict, "CONFLICT", "this mobile number already exists", nil)
	case errors.Is(err, repository.ErrDuplicateEmail):
		response.Error(w, r, http.StatusConflict, "CONFLICT", "this email already exists", nil)
	case errors.Is(err, repository.ErrUserNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
	case errors.Is(err, repository.ErrDeviceSessionNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "device session not found", nil)
	case errors.Is(err, service.ErrInvalidOtp):
		response.Error(w, r, http.StatusBadRequest, "INVALID_OTP", "invalid otp", nil)
	case errors.Is(err, service.ErrUserDeleted), errors.Is(err, service.ErrAccessDenied):
		response.Error(w, r, http.StatusForbidden, "ACCESS_DENIED", "Access Denied", nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
