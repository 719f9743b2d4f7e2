package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ripu1821/mobile-auth-service/internal/http/middleware"
	"github.com/ripu1821/mobile-auth-service/internal/http/response"
	"github.com/ripu1821/mobile-auth-service/internal/repository"
	"github.com/ripu1821/mobile-auth-service/internal/security"
	"github.com/ripu1821/mobile-auth-service/internal/service"
)

type UserHandler struct {
	userSvc service.UserServiceInterface
}

func NewUserHandler(userSvc service.UserServiceInterface) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user", nil)
		return
	}
	user, err := h.userSvc.GetByID(r.Context(), claims.UserID)
	if err != nil {
		writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := h.userSvc.GetByID(r.Context(), id)
	if err != nil {
		writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input service.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	user, err := h.userSvc.UpdateByID(r.Context(), id, input)
	if err != nil {
		writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.userSvc.SoftDeleteByID(r.Context(), id); err != nil {
		writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "user deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id64, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid id", nil)
		return 0, false
	}
	return uint(id64), true
}

func writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
	case errors.Is(err, security.ErrInvalidPhone):
		response.Error(w, r, http.StatusBadRequest, "INVALID_PHONE", "invalid mobile number", nil)
	case errors.Is(err, repository.ErrDuplicateMobileNumber), errors.Is(err, repository.ErrDuplicateEmail):
		response.Error(w, r, http.StatusConflict, "CONFLICT", "value already exists", nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
