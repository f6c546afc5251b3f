package controller

import (
	"time"

	"rag-postgres-be/internal/dto"
	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/serverutils"
	"rag-postgres-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
}

type documentController struct {
	ingestionService service.IIngestionService
}

func NewDocumentController(ingestionService service.IIngestionService) IDocumentController {
	return &documentController{
		ingestionService: ingestionService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/documents", c.Ingest)
}

func (c *documentController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	documents := make([]*entity.Document, 0, len(req.Documents))
	for _, doc := range req.Documents {
		documents = append(documents, &entity.Document{
			Id:       doc.Id,
			Content:  doc.Content,
			Metadata: doc.Metadata,
		})
	}

	chunksCreated, err := c.ingestionService.AddDocuments(ctx.Context(), documents, req.BatchSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest documents", dto.IngestDocumentsResponse{
		DocumentsProcessed: len(documents),
		ChunksCreated:      chunksCreated,
		Timestamp:          time.Now().UTC(),
	}))
}
