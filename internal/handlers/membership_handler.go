package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/strideapp/stride-backend/internal/catalog"
	"github.com/strideapp/stride-backend/internal/dto"
	"github.com/strideapp/stride-backend/internal/identity"
	"github.com/strideapp/stride-backend/internal/models"
	"github.com/strideapp/stride-backend/internal/services"
)

// MembershipEngine is the slice of the lifecycle engine the HTTP surface
// needs. All decisions live in the engine; the handler only validates the
// wire format and maps engine errors to status codes.
type MembershipEngine interface {
	Buy(userID uuid.UUID, membershipType, duration, modeOfPayment string) (*models.Membership, error)
	Cancel(userID uuid.UUID) (string, error)
	ScheduleUpdate(userID uuid.UUID, membershipType, duration string, autoRenew bool) (string, error)
	HasActiveMembership(userID uuid.UUID) (bool, error)
	GetCurrentMembership(userID uuid.UUID) (*models.Membership, error)
	GetNextBillingDate(userID uuid.UUID) (*time.Time, error)
	GetPendingMembership(userID uuid.UUID) (*models.PendingMembershipUpdate, error)
}

type MembershipHandler struct {
	engine MembershipEngine
}

func NewMembershipHandler(engine MembershipEngine) *MembershipHandler {
	return &MembershipHandler{engine: engine}
}

// Buy handles POST /buy_membership.
func (h *MembershipHandler) Buy(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.BuyMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "No JSON Data found")
	}

	_, err = h.engine.Buy(userID, req.MembershipType, req.Duration, req.ModeOfPayment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return failure(c, fiber.StatusBadRequest, "Missing Required Fields")
		case errors.Is(err, services.ErrInvalidDuration):
			return failure(c, fiber.StatusBadRequest, "Invalid duration")
		case errors.Is(err, services.ErrInvalidMembershipType):
			return failure(c, fiber.StatusBadRequest, "Invalid membership type")
		case errors.Is(err, services.ErrInvalidPaymentMethod):
			return failure(c, fiber.StatusBadRequest, "Invalid mode of payment")
		case errors.Is(err, services.ErrAlreadyActive):
			return failure(c, fiber.StatusBadRequest, "User already has an active membership")
		default:
			return h.internal(c, "buy_membership", err)
		}
	}

	return c.JSON(dto.MessageResponse{ReturnCode: 1, Message: services.MsgPurchased})
}

// Cancel handles DELETE /cancel_membership.
func (h *MembershipHandler) Cancel(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	message, err := h.engine.Cancel(userID)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveMembership) {
			return failure(c, fiber.StatusNotFound, "User does not have an active membership")
		}
		return h.internal(c, "cancel_membership", err)
	}

	return c.JSON(dto.MessageResponse{ReturnCode: 1, Message: message})
}

// Update handles POST /update_membership.
func (h *MembershipHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "No JSON Data found")
	}

	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}

	message, err := h.engine.ScheduleUpdate(userID, req.MembershipType, req.Duration, autoRenew)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return failure(c, fiber.StatusBadRequest, "Missing Required Fields")
		case errors.Is(err, services.ErrNoActiveMembership):
			return failure(c, fiber.StatusBadRequest, "No active membership found")
		case errors.Is(err, services.ErrInvalidMembershipType):
			return failure(c, fiber.StatusBadRequest, "Invalid membership type")
		case errors.Is(err, services.ErrInvalidDuration):
			return failure(c, fiber.StatusBadRequest, "Invalid duration")
		default:
			return h.internal(c, "update_membership", err)
		}
	}

	return c.JSON(dto.MessageResponse{ReturnCode: 1, Message: message})
}

// GetCurrent handles GET /get_current_membership.
func (h *MembershipHandler) GetCurrent(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	m, err := h.engine.GetCurrentMembership(userID)
	if err != nil {
		return h.internal(c, "get_current_membership", err)
	}
	if m == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User does not have an active membership.",
		})
	}

	return c.JSON(dto.CurrentMembershipResponse{
		MembershipType:     m.MembershipType,
		MembershipDuration: m.Duration,
		ModeOfPayment:      m.ModeOfPayment,
		StartDate:          m.StartDate.Format(time.RFC3339),
		EndDate:            m.EndDate.Format(time.RFC3339),
		AutoRenew:          m.AutoRenew,
		Price:              catalog.Price(m.MembershipType, m.Duration),
	})
}

// GetBillingCycleDate handles GET /get_billing_cycle_date.
func (h *MembershipHandler) GetBillingCycleDate(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	next, err := h.engine.GetNextBillingDate(userID)
	if err != nil {
		return h.internal(c, "get_billing_cycle_date", err)
	}

	var resp dto.BillingCycleDateResponse
	if next != nil {
		formatted := next.Format(time.RFC3339)
		resp.NextBillingCycleDate = &formatted
	}
	return c.JSON(resp)
}

// GetPending handles GET /get_pending_membership.
func (h *MembershipHandler) GetPending(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	pending, err := h.engine.GetPendingMembership(userID)
	if err != nil {
		return h.internal(c, "get_pending_membership", err)
	}

	var resp dto.PendingMembershipResponse
	if pending != nil {
		resp.PendingMembershipType = &pending.MembershipType
		resp.PendingMembershipDuration = &pending.Duration
	}
	return c.JSON(resp)
}

// HasActive handles GET /has_active_membership.
func (h *MembershipHandler) HasActive(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	active, err := h.engine.HasActiveMembership(userID)
	if err != nil {
		return h.internal(c, "has_active_membership", err)
	}

	return c.JSON(dto.HasActiveMembershipResponse{HasActiveMembership: active})
}

func (h *MembershipHandler) internal(c *fiber.Ctx, action string, err error) error {
	slog.Error("membership request failed",
		"action", action,
		"path", c.Path(),
		"error", err.Error(),
	)
	return failure(c, fiber.StatusInternalServerError, "Internal server error")
}

func failure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.FailureResponse{ReturnCode: 0, Error: message})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized",
	})
}
