package httpapi

import (
	"errors"
	"net/http"

	"printmitra-be/internal/message"
	"printmitra-be/internal/notification"
	"printmitra-be/internal/order"
	"printmitra-be/internal/shop"
	"printmitra-be/internal/user"

	"printmitra-be/internal/utils"
)

// respondError translates domain errors into HTTP status codes in one place
// so the handlers stay thin.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, shop.ErrShopNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, message.ErrMessageNotFound),
		errors.Is(err, notification.ErrNotificationNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, shop.ErrForbidden),
		errors.Is(err, message.ErrForbidden):
		utils.WriteJSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderDeleted):
		utils.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, order.ErrShopClosed),
		errors.Is(err, shop.ErrBadSchedule),
		errors.Is(err, message.ErrEmptyMessage),
		errors.Is(err, user.ErrInvalidPhone):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	default:
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
