package controller

import (
	"time"

	"rag-postgres-be/internal/dto"
	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/serverutils"
	"rag-postgres-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStatsController interface {
	RegisterRoutes(r fiber.Router)
	Stats(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type statsController struct {
	statsService service.IStatsService
}

func NewStatsController(statsService service.IStatsService) IStatsController {
	return &statsController{
		statsService: statsService,
	}
}

func (c *statsController) RegisterRoutes(r fiber.Router) {
	r.Get("/stats", c.Stats)
	r.Get("/health", c.Health)
}

func (c *statsController) Stats(ctx *fiber.Ctx) error {
	stats, err := c.statsService.GetStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get stats", toStatsResponse(stats)))
}

// Health doubles as a liveness and store-reachability probe. The stats
// snapshot exercises every table, so a passing probe means the store works.
func (c *statsController) Health(ctx *fiber.Ctx) error {
	stats, err := c.statsService.GetStats(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
		})
	}

	return ctx.JSON(dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Stats:     toStatsResponse(stats),
	})
}

func toStatsResponse(stats *entity.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalDocuments:    stats.TotalDocuments,
		TotalSearches:     stats.TotalSearches,
		AvgResponseTimeMs: stats.AvgResponseTimeMs,
		CachedEmbeddings:  stats.CachedEmbeddings,
	}
}
