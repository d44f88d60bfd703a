package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/api/dto"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// PaymentsHandler records and processes payments.
type PaymentsHandler struct {
	service *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService}
}

// List GET /api/payments.
func (h *PaymentsHandler) List(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	payments, err := h.service.List(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"payments": dto.NewPaymentResponses(payments)})
}

// Create POST /api/payments.
func (h *PaymentsHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.PaymentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	payment, err := h.service.Create(c.UserContext(), principal, paymentInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(success(fiber.Map{
		"paymentId":     payment.ID,
		"transactionId": payment.TransactionID,
	}))
}

// Process POST /api/payments/process.
func (h *PaymentsHandler) Process(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.PaymentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	payment, err := h.service.Process(c.UserContext(), principal, paymentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(success(fiber.Map{
		"paymentId":     payment.ID,
		"transactionId": payment.TransactionID,
		"message":       "Payment processed successfully",
	}))
}

func paymentInput(req dto.PaymentRequest) service.PaymentInput {
	return service.PaymentInput{
		AppointmentID: req.AppointmentID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}
}
