package catalog

import (
	"context"
	"errors"

	"resource-sync/core/logger"
	"resource-sync/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for catalog items.
type Handler struct {
	service *Service
	cfg     Config
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, cfg Config) *Handler {
	return &Handler{service: service, cfg: cfg, logger: service.logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/items")
	group.Get("/:id", h.HandleGetItem)
	group.Get("/:id/states", h.HandleGetItemStates)
	group.Get("/:id/remote", h.HandleGetRemoteItem)
	group.Delete("/:id", h.HandleDeleteItem)
}

// HandleGetItem synchronizes an item and returns its terminal state.
// Success answers 200; Failure answers 502 with the last local copy attached.
// ?refresh=true bypasses the staleness window.
func (h *Handler) HandleGetItem(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	l := logger.WithRayID(h.logger, c).With(zap.Int("item_id", id))

	ctx, cancel := context.WithTimeout(c.UserContext(), h.cfg.RequestTimeout())
	defer cancel()

	final, _, err := h.service.Resolve(ctx, id, utils.ToBool(c.Query("refresh")))
	if err != nil {
		return h.unresolved(c, l, err)
	}

	if final.IsFailure() {
		l.Warn("Item sync failed", zap.Error(final.Err))
		return c.Status(fiber.StatusBadGateway).JSON(final)
	}
	return c.JSON(final)
}

// HandleGetItemStates synchronizes an item and returns every emitted state up
// to and including the terminal one.
func (h *Handler) HandleGetItemStates(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	l := logger.WithRayID(h.logger, c).With(zap.Int("item_id", id))

	ctx, cancel := context.WithTimeout(c.UserContext(), h.cfg.RequestTimeout())
	defer cancel()

	_, states, err := h.service.Resolve(ctx, id, utils.ToBool(c.Query("refresh")))
	if err != nil {
		return h.unresolved(c, l, err)
	}

	return c.JSON(fiber.Map{
		"id":     id,
		"states": states,
	})
}

// HandleGetRemoteItem returns the remote copy of an item without touching the
// local store. Success answers 200; Failure answers 502.
func (h *Handler) HandleGetRemoteItem(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.cfg.RequestTimeout())
	defer cancel()

	state := h.service.Peek(ctx, id)
	if state.IsFailure() {
		logger.WithRayID(h.logger, c).Warn("Remote item fetch failed", zap.Int("item_id", id), zap.Error(state.Err))
		return c.Status(fiber.StatusBadGateway).JSON(state)
	}
	return c.JSON(state)
}

// HandleDeleteItem drops the local copy of an item.
func (h *Handler) HandleDeleteItem(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}

	if err := h.service.Forget(c.UserContext(), id); err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to delete item", zap.Int("item_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) unresolved(c *fiber.Ctx, l *zap.Logger, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		l.Warn("Item sync timed out")
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error": "sync timed out",
		})
	}
	l.Error("Item sync ended without a result", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func parseID(c *fiber.Ctx) (int, bool) {
	id := utils.ToInt(c.Params("id"))
	return id, id > 0
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "id must be a positive integer",
	})
}
