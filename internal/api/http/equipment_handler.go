package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/service"
)

type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc}
}

func (h *EquipmentHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	eq := req.toDomain("")
	if err := h.equipmentSvc.CreateEquipment(r.Context(), eq); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	filter, err := equipmentFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, total, err := h.equipmentSvc.ListEquipment(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Equipment{}
	}
	writeList(w, items, total)
}

func (h *EquipmentHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	eq, err := h.equipmentSvc.GetEquipment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	eq := req.toDomain(mux.Vars(r)["id"])
	if err := h.equipmentSvc.UpdateEquipment(r.Context(), eq); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	if err := h.equipmentSvc.DeleteEquipment(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EquipmentHandler) SetEquipmentStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	status, err := domain.ParseEquipmentStatus(req.Status)
	if err != nil {
		writeError(w, r, badRequest("%v", err))
		return
	}
	eq, err := h.equipmentSvc.SetEquipmentStatus(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, eq)
}

// QuoteItem prices the equipment for ?start=yyyy-mm-dd&end=yyyy-mm-dd.
func (h *EquipmentHandler) QuoteItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := parseDate("start", q.Get("start"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := parseDate("end", q.Get("end"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	quote, err := h.equipmentSvc.QuoteItem(r.Context(), mux.Vars(r)["id"], start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, quote)
}
