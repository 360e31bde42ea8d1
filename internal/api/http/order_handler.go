package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/service"
)

type OrderHandler struct {
	orderSvc    service.OrderService
	contractSvc service.ContractService
}

func NewOrderHandler(orderSvc service.OrderService, contractSvc service.ContractService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, contractSvc: contractSvc}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.orderSvc.CreateOrder(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, result)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := orderFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	orders, total, err := h.orderSvc.ListOrders(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.RentalOrder{}
	}
	writeList(w, orders, total)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.orderSvc.UpdateOrderDetails(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, result)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	logger.InfoContext(r.Context(), "Order deletion requested", "orderID", id, "userID", callerID(r.Context()))
	if err := h.orderSvc.DeleteOrder(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		writeError(w, r, badRequest("%v", err))
		return
	}
	id := mux.Vars(r)["id"]
	logger.InfoContext(r.Context(), "Order status change requested", "orderID", id, "status", status, "userID", callerID(r.Context()))
	result, err := h.orderSvc.UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, result)
}

type paymentResponse struct {
	Order    *domain.RentalOrder `json:"order"`
	Contract *domain.Contract    `json:"contract,omitempty"`
}

func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	status, err := domain.ParsePaymentStatus(req.Status)
	if err != nil {
		writeError(w, r, badRequest("%v", err))
		return
	}
	id := mux.Vars(r)["id"]
	logger.InfoContext(r.Context(), "Payment status change requested", "orderID", id, "status", status, "userID", callerID(r.Context()))
	order, contract, err := h.orderSvc.UpdatePaymentStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, paymentResponse{Order: order, Contract: contract})
}

func (h *OrderHandler) ScheduleDelivery(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	date, err := parseDate("delivery_date", req.DeliveryDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.orderSvc.ScheduleDelivery(r.Context(), mux.Vars(r)["id"], date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, result)
}

func (h *OrderHandler) GetOrderContract(w http.ResponseWriter, r *http.Request) {
	contract, err := h.contractSvc.GetContractForOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, contract)
}
