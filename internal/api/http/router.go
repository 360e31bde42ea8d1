package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router dispatches to. Auth is nil when
// authentication is disabled.
type Handlers struct {
	Orders    *OrderHandler
	Equipment *EquipmentHandler
	Contracts *ContractHandler
	Auth      *AuthMiddleware
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewRouter registers the /api/v1 routes. Route names are the keys of
// config.EndpointSecurityConfig.
func NewRouter(h Handlers) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogger)
	router.HandleFunc("/healthz", healthz).Methods("GET").Name("healthz")

	api := router.PathPrefix("/api/v1").Subrouter()
	if h.Auth != nil {
		api.Use(h.Auth.Handler)
	}

	api.HandleFunc("/orders", h.Orders.CreateOrder).Methods("POST").Name("orders.create")
	api.HandleFunc("/orders", h.Orders.ListOrders).Methods("GET").Name("orders.list")
	api.HandleFunc("/orders/{id}", h.Orders.GetOrder).Methods("GET").Name("orders.get")
	api.HandleFunc("/orders/{id}", h.Orders.UpdateOrder).Methods("PUT").Name("orders.update")
	api.HandleFunc("/orders/{id}", h.Orders.DeleteOrder).Methods("DELETE").Name("orders.delete")
	api.HandleFunc("/orders/{id}/status", h.Orders.UpdateOrderStatus).Methods("POST").Name("orders.status")
	api.HandleFunc("/orders/{id}/payment", h.Orders.UpdatePaymentStatus).Methods("POST").Name("orders.payment")
	api.HandleFunc("/orders/{id}/delivery", h.Orders.ScheduleDelivery).Methods("POST").Name("orders.delivery")
	api.HandleFunc("/orders/{id}/contract", h.Orders.GetOrderContract).Methods("GET").Name("orders.contract")

	api.HandleFunc("/equipment", h.Equipment.CreateEquipment).Methods("POST").Name("equipment.create")
	api.HandleFunc("/equipment", h.Equipment.ListEquipment).Methods("GET").Name("equipment.list")
	api.HandleFunc("/equipment/{id}", h.Equipment.GetEquipment).Methods("GET").Name("equipment.get")
	api.HandleFunc("/equipment/{id}", h.Equipment.UpdateEquipment).Methods("PUT").Name("equipment.update")
	api.HandleFunc("/equipment/{id}", h.Equipment.DeleteEquipment).Methods("DELETE").Name("equipment.delete")
	api.HandleFunc("/equipment/{id}/status", h.Equipment.SetEquipmentStatus).Methods("POST").Name("equipment.status")
	api.HandleFunc("/equipment/{id}/quote", h.Equipment.QuoteItem).Methods("GET").Name("equipment.quote")

	api.HandleFunc("/contracts", h.Contracts.ListContracts).Methods("GET").Name("contracts.list")
	api.HandleFunc("/contracts/{id}", h.Contracts.GetContract).Methods("GET").Name("contracts.get")
	api.HandleFunc("/contracts/{id}", h.Contracts.DeleteContract).Methods("DELETE").Name("contracts.delete")

	return router
}
