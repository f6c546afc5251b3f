package controller

import (
	"encoding/json"
	"time"

	"rag-postgres-be/internal/dto"
	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/apperrors"
	"rag-postgres-be/internal/pkg/serverutils"
	"rag-postgres-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
}

type searchController struct {
	retrievalService service.IRetrievalService
	queryService     service.IQueryService
}

func NewSearchController(retrievalService service.IRetrievalService, queryService service.IQueryService) ISearchController {
	return &searchController{
		retrievalService: retrievalService,
		queryService:     queryService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	r.Post("/search", c.Search)
	r.Post("/query", c.Query)
}

// rawSearchRequest and rawQueryRequest defer filter decoding so a non-object
// filter can be reported as a filter problem instead of a generic body-parse
// failure.
type rawSearchRequest struct {
	Query          string          `json:"query"`
	TopK           int             `json:"top_k"`
	MetadataFilter json.RawMessage `json:"metadata_filter"`
}

type rawQueryRequest struct {
	Question       string          `json:"question"`
	TopK           int             `json:"top_k"`
	MetadataFilter json.RawMessage `json:"metadata_filter"`
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	var raw rawSearchRequest
	if err := ctx.BodyParser(&raw); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	filter, err := decodeMetadataFilter(raw.MetadataFilter)
	if err != nil {
		return err
	}

	req := dto.SearchRequest{
		Query:          raw.Query,
		TopK:           raw.TopK,
		MetadataFilter: filter,
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	results, err := c.retrievalService.Search(ctx.Context(), req.Query, req.TopK, req.MetadataFilter)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search documents", dto.SearchResponse{
		Query:     req.Query,
		Results:   toSearchResultItems(results),
		Count:     len(results),
		Timestamp: time.Now().UTC(),
	}))
}

func (c *searchController) Query(ctx *fiber.Ctx) error {
	var raw rawQueryRequest
	if err := ctx.BodyParser(&raw); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	filter, err := decodeMetadataFilter(raw.MetadataFilter)
	if err != nil {
		return err
	}

	req := dto.QueryRequest{
		Question:       raw.Question,
		TopK:           raw.TopK,
		MetadataFilter: filter,
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	result, err := c.queryService.Answer(ctx.Context(), req.Question, req.TopK, req.MetadataFilter)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", dto.QueryResponse{
		Question:  result.Question,
		Answer:    result.Answer,
		Sources:   toSearchResultItems(result.Sources),
		Timestamp: result.Timestamp,
	}))
}

func decodeMetadataFilter(raw json.RawMessage) (map[string]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var filter map[string]interface{}
	if err := json.Unmarshal(raw, &filter); err != nil {
		return nil, apperrors.New(apperrors.KindMalformedFilter, "decode metadata filter", err)
	}
	return filter, nil
}

func toSearchResultItems(chunks []*entity.ScoredChunk) []dto.SearchResultItem {
	items := make([]dto.SearchResultItem, 0, len(chunks))
	for _, chunk := range chunks {
		items = append(items, dto.SearchResultItem{
			Id:         chunk.Id,
			Content:    chunk.Content,
			Metadata:   chunk.Metadata,
			Similarity: chunk.Similarity,
		})
	}
	return items
}
