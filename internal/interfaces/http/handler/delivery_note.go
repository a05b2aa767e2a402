package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appdelivery "github.com/nubeerp/backend/internal/application/delivery"
	"github.com/nubeerp/backend/internal/domain/shared"
	"github.com/nubeerp/backend/internal/interfaces/http/dto"
	"github.com/nubeerp/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// noteService is the surface shared by the purchase and sales services
type noteService interface {
	Create(ctx context.Context, companyID uuid.UUID, req appdelivery.CreateDeliveryNoteRequest) (*appdelivery.DeliveryNoteResponse, error)
	Confirm(ctx context.Context, companyID, noteID uuid.UUID) (*appdelivery.DeliveryNoteResponse, error)
	GetByID(ctx context.Context, companyID, noteID uuid.UUID) (*appdelivery.DeliveryNoteResponse, error)
	List(ctx context.Context, companyID uuid.UUID, filter appdelivery.NoteListFilter) (*shared.Paginated[appdelivery.DeliveryNoteResponse], error)
}

// DeliveryNoteHandler serves one delivery note flavor. The same handler
// type backs both the purchase and the sales routes; only the injected
// service differs.
type DeliveryNoteHandler struct {
	BaseHandler
	service noteService
}

// NewDeliveryNoteHandler creates a handler over the given note service
func NewDeliveryNoteHandler(service noteService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{service: service}
}

// RegisterRoutes registers the note CRUD routes on the given group
func (h *DeliveryNoteHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.POST("/:id/confirm", h.Confirm)
}

// CreateNoteLineBody is one requested line in the create request body
type CreateNoteLineBody struct {
	ArticleID string  `json:"article_id" binding:"required,uuid"`
	Quantity  string  `json:"quantity" binding:"required"`
	Price     *string `json:"price,omitempty"`
}

// CreateNoteBody is the create request body
type CreateNoteBody struct {
	PartnerID string               `json:"partner_id" binding:"required,uuid"`
	Date      string               `json:"date" binding:"required"`
	Reference string               `json:"reference,omitempty"`
	Lines     []CreateNoteLineBody `json:"lines" binding:"required,min=1,dive"`
}

// ListNotesQuery holds list query parameters
type ListNotesQuery struct {
	dto.ListRequest
	PartnerID string `form:"partner_id" binding:"omitempty,uuid"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// parseDate accepts RFC3339 timestamps and plain ISO dates
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (b CreateNoteBody) toRequest() (appdelivery.CreateDeliveryNoteRequest, error) {
	partnerID, err := uuid.Parse(b.PartnerID)
	if err != nil {
		return appdelivery.CreateDeliveryNoteRequest{}, err
	}
	date, err := parseDate(b.Date)
	if err != nil {
		return appdelivery.CreateDeliveryNoteRequest{}, err
	}

	lines := make([]appdelivery.CreateNoteLineRequest, 0, len(b.Lines))
	for _, line := range b.Lines {
		articleID, err := uuid.Parse(line.ArticleID)
		if err != nil {
			return appdelivery.CreateDeliveryNoteRequest{}, err
		}
		quantity, err := decimal.NewFromString(line.Quantity)
		if err != nil {
			return appdelivery.CreateDeliveryNoteRequest{}, err
		}
		var price *decimal.Decimal
		if line.Price != nil {
			parsed, err := decimal.NewFromString(*line.Price)
			if err != nil {
				return appdelivery.CreateDeliveryNoteRequest{}, err
			}
			price = &parsed
		}
		lines = append(lines, appdelivery.CreateNoteLineRequest{
			ArticleID: articleID,
			Quantity:  quantity,
			Price:     price,
		})
	}

	return appdelivery.CreateDeliveryNoteRequest{
		PartnerID: partnerID,
		Date:      date,
		Reference: b.Reference,
		Lines:     lines,
	}, nil
}

// Create handles POST / for the note flavor
func (h *DeliveryNoteHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var body CreateNoteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	req, err := body.toRequest()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID handles GET /:id
func (h *DeliveryNoteHandler) GetByID(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), companyID, noteID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm handles POST /:id/confirm
func (h *DeliveryNoteHandler) Confirm(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	resp, err := h.service.Confirm(c.Request.Context(), companyID, noteID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET / with pagination and optional partner/date filters
func (h *DeliveryNoteHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var query ListNotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	filter := appdelivery.NoteListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
	}
	if query.PartnerID != "" {
		partnerID, err := uuid.Parse(query.PartnerID)
		if err != nil {
			h.BadRequest(c, "Invalid partner ID")
			return
		}
		filter.PartnerID = &partnerID
	}
	if query.StartDate != "" {
		startDate, err := parseDate(query.StartDate)
		if err != nil {
			h.BadRequest(c, "Invalid start date")
			return
		}
		filter.StartDate = &startDate
	}
	if query.EndDate != "" {
		endDate, err := parseDate(query.EndDate)
		if err != nil {
			h.BadRequest(c, "Invalid end date")
			return
		}
		filter.EndDate = &endDate
	}

	result, err := h.service.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
