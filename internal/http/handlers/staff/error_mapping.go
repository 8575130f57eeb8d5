package staff

import (
	"errors"

	"github.com/cantina-pos/internal/cart"
	"github.com/cantina-pos/internal/http/response"
	"github.com/cantina-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error onto an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	var vErr *cart.ValidationError
	if errors.As(err, &vErr) {
		response.Error(c, response.CodeBadRequest, vErr.Message)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: cart.ErrIndexOutOfRange, code: response.CodeNotFound, msg: "el producto no está en el carrito"},
	{target: cart.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "cantidad inválida"},
	{target: cart.ErrInvalidUnitPrice, code: response.CodeBadRequest, msg: "precio inválido"},
	{target: cart.ErrSubmissionInFlight, code: response.CodeConflict, msg: "la orden ya se está enviando"},
	{target: service.ErrMenuItemNotFound, code: response.CodeNotFound, msg: "producto no encontrado"},
	{target: service.ErrMenuItemNotAvailable, code: response.CodeBadRequest, msg: "producto no disponible"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "orden no encontrada"},
	{target: service.ErrOrderNotOpen, code: response.CodeBadRequest, msg: "la orden ya está cerrada"},
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, msg: "producto de la orden inválido"},
	{target: service.ErrInvalidOrderType, code: response.CodeBadRequest, msg: "tipo de orden inválido"},
	{target: service.ErrInvalidPaymentMethod, code: response.CodeBadRequest, msg: "método de pago inválido"},
	{target: service.ErrDeliveryInfoRequired, code: response.CodeBadRequest, msg: "faltan datos de entrega a domicilio"},
	{target: service.ErrMenuItemNotFound, code: response.CodeNotFound, msg: "producto no encontrado"},
	{target: service.ErrMenuItemNotAvailable, code: response.CodeBadRequest, msg: "producto no disponible"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error al actualizar el carrito")
}

func respondSubmitError(c *gin.Context, err error) {
	rules := make([]mappedHandlerError, 0, len(cartErrorRules)+len(orderErrorRules))
	rules = append(rules, cartErrorRules...)
	rules = append(rules, orderErrorRules...)
	respondWithMappedError(c, err, rules, response.CodeInternal, "no se pudo crear la orden")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error al procesar la orden")
}
