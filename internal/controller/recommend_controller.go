package controller

import (
	"next-action-be/internal/dto"
	"next-action-be/internal/pkg/serverutils"
	"next-action-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecommendController interface {
	RegisterRoutes(r fiber.Router)
	Next(ctx *fiber.Ctx) error
}

type recommendController struct {
	recommendService service.IRecommendService
}

func NewRecommendController(recommendService service.IRecommendService) IRecommendController {
	return &recommendController{
		recommendService: recommendService,
	}
}

func (c *recommendController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recommend/v1")
	h.Post("next", c.Next)
}

func (c *recommendController) Next(ctx *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendService.Next(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate recommendation", res))
}
