package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/service"
)

type ContractHandler struct {
	contractSvc service.ContractService
}

func NewContractHandler(contractSvc service.ContractService) *ContractHandler {
	return &ContractHandler{contractSvc: contractSvc}
}

func (h *ContractHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	filter, err := contractFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	contracts, total, err := h.contractSvc.ListContracts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if contracts == nil {
		contracts = []domain.Contract{}
	}
	writeList(w, contracts, total)
}

func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	contract, err := h.contractSvc.GetContract(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, contract)
}

func (h *ContractHandler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	if err := h.contractSvc.DeleteContract(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
