package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ripu1821/mobile-auth-service/internal/http/response"
	"github.com/ripu1821/mobile-auth-service/internal/repository"
	"github.com/ripu1821/mobile-auth-service/internal/service"
)

type DeviceHandler struct {
	deviceSvc service.DeviceServiceInterface
}

func NewDeviceHandler(deviceSvc service.DeviceServiceInterface) *DeviceHandler {
	return &DeviceHandler{deviceSvc: deviceSvc}
}

func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.deviceSvc.List(r.Context())
	if err != nil {
		writeDeviceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, sessions)
}

func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	session, err := h.deviceSvc.GetByID(r.Context(), id)
	if err != nil {
		writeDeviceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, session)
}

func (h *DeviceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input service.UpdateDeviceSessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	session, err := h.deviceSvc.UpdateByID(r.Context(), id, input)
	if err != nil {
		writeDeviceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, session)
}

func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.deviceSvc.DeleteByID(r.Context(), id); err != nil {
		writeDeviceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "device session deleted"})
}

func writeDeviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrDeviceSessionNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "device session not found", nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
