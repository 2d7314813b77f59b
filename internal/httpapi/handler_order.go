package httpapi

import (
	"encoding/json"
	"net/http"

	"printmitra-be/internal/order"
	"printmitra-be/internal/user"
	"printmitra-be/internal/utils"

	"github.com/gorilla/mux"
)

type createOrderRequest struct {
	ShopID         int64           `json:"shopId"`
	Type           order.Type      `json:"type"`
	Title          string          `json:"title"`
	Description    *string         `json:"description"`
	Specifications json.RawMessage `json:"specifications"`
	Files          []order.File    `json:"files"`
	IsUrgent       bool            `json:"isUrgent"`
	EstimateAmount *float64        `json:"estimateAmount"`
}

func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.ShopID == 0 {
		utils.WriteJSONError(w, "title and shopId are required", http.StatusBadRequest)
		return
	}
	if req.Type != order.TypeUpload && req.Type != order.TypeWalkin {
		utils.WriteJSONError(w, "type must be upload or walkin", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())

	o, err := a.Orders.Create(r.Context(), order.CreateInput{
		CustomerID:     userID,
		ShopID:         req.ShopID,
		Type:           req.Type,
		Title:          req.Title,
		Description:    req.Description,
		Specifications: req.Specifications,
		Files:          req.Files,
		IsUrgent:       req.IsUrgent,
		EstimateAmount: req.EstimateAmount,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, o)
}

// createAnonymousOrder backs the walk-in QR flow: the customer scans a code
// at the counter and places an order with just a phone number. The identity
// is resolved-or-created like a phone login and the session token is returned
// alongside the order so the browser can watch its status.
func (a *API) createAnonymousOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		createOrderRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.ShopID == 0 {
		utils.WriteJSONError(w, "title and shopId are required", http.StatusBadRequest)
		return
	}

	token, u, err := a.Users.PhoneLogin(r.Context(), req.Phone)
	if err != nil {
		respondError(w, err)
		return
	}

	o, err := a.Orders.Create(r.Context(), order.CreateInput{
		CustomerID:     u.ID,
		ShopID:         req.ShopID,
		Type:           order.TypeWalkin,
		Title:          req.Title,
		Description:    req.Description,
		Specifications: req.Specifications,
		Files:          req.Files,
		IsUrgent:       req.IsUrgent,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	setAuthCookie(w, token)
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  u,
		"order": o,
	})
}

func (a *API) listMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	includeDeleted := r.URL.Query().Get("history") == "true"

	orders, err := a.Orders.ListForCustomer(r.Context(), userID, includeDeleted)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (a *API) listShopOrders(w http.ResponseWriter, r *http.Request) {
	shopID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid shop id", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))
	includeDeleted := r.URL.Query().Get("history") == "true"

	orders, err := a.Orders.ListForShop(r.Context(), shopID, userID, role, includeDeleted)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (a *API) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	o, err := a.Orders.Get(r.Context(), orderID, userID, role)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (a *API) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var req struct {
		Status order.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	o, err := a.Orders.Transition(r.Context(), orderID, userID, role, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (a *API) updateNotes(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var req struct {
		Notes *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	o, err := a.Orders.UpdateNotes(r.Context(), orderID, userID, role, req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (a *API) setAmounts(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var req struct {
		EstimateAmount *float64 `json:"estimateAmount"`
		FinalAmount    *float64 `json:"finalAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	o, err := a.Orders.SetAmounts(r.Context(), orderID, userID, role, req.EstimateAmount, req.FinalAmount)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (a *API) addFiles(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var req struct {
		Files []order.File `json:"files"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Files) == 0 {
		utils.WriteJSONError(w, "files are required", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	o, err := a.Orders.AddFiles(r.Context(), orderID, userID, role, req.Files)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (a *API) deleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	if err := a.Orders.SoftDelete(r.Context(), orderID, userID, role); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
