package controller

import (
	"next-action-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	modelActions int
	logLen       func() int
}

// NewHealthController reports liveness plus two cheap readiness facts: the
// size of the loaded action vocabulary and the current event log length.
func NewHealthController(modelActions int, logLen func() int) IHealthController {
	return &healthController{modelActions: modelActions, logLen: logLen}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)
}

func (c *healthController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("next-action recommendation service", "ok"))
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Service healthy", fiber.Map{
		"model_actions": c.modelActions,
		"event_log_len": c.logLen(),
	}))
}
