package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/venue-booking-engine/internal/booking"
	"github.com/campuskit/venue-booking-engine/internal/notify"
	"github.com/campuskit/venue-booking-engine/internal/pkg/request"
	"github.com/campuskit/venue-booking-engine/internal/pkg/response"
)

type Handler struct {
	service   booking.Service
	publisher notify.Publisher
	logger    *slog.Logger
}

func NewHandler(service booking.Service, publisher notify.Publisher, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	req := booking.CreateRequest{
		ResourceID:    body.ResourceID,
		RequesterID:   body.RequesterID,
		RequesterName: body.RequesterName,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		Purpose:       body.Purpose,
	}

	b, conflict, err := h.service.RequestBooking(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if conflict != nil {
		h.publishDecision(c, notify.BookingDecidedEvent{
			ResourceID:  req.ResourceID,
			RequesterID: req.RequesterID,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Outcome:     "conflict",
		})
		c.JSON(http.StatusConflict, NewConflictResponse(conflict))
		return
	}

	h.publishDecision(c, notify.BookingDecidedEvent{
		BookingID:   b.ID,
		ResourceID:  b.ResourceID,
		RequesterID: b.RequesterID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status()),
		Outcome:     "created",
	})
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var query CheckAvailabilityRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := query.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	a, err := h.service.CheckAvailability(c.Request.Context(), uri.ID, query.StartTime, query.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(a))
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	filter := booking.Filter{
		RequesterID: req.RequesterID,
		ResourceID:  req.ResourceID,
		Status:      req.Status,
		StartTime:   req.StartTimeFrom,
		EndTime:     req.StartTimeTo,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortBy:      req.SortBy,
		SortOrder:   strings.ToUpper(req.SortOrder),
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	resp := response.NewPageResponse(items, filter.Page, filter.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Reschedule(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body RescheduleBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	b, conflict, err := h.service.Reschedule(c.Request.Context(), uri.ID, body.StartTime, body.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	if conflict != nil {
		c.JSON(http.StatusConflict, NewConflictResponse(conflict))
		return
	}

	h.publishDecision(c, notify.BookingDecidedEvent{
		BookingID:   b.ID,
		ResourceID:  b.ResourceID,
		RequesterID: b.RequesterID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status()),
		Outcome:     "rescheduled",
	})
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Approve(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body ApproveBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Approve(c.Request.Context(), uri.ID, body.ApprovedBy)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publishTransition(c, b)
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Reject(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body RejectBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Reject(c.Request.Context(), uri.ID, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publishTransition(c, b)
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publishTransition(c, b)
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// publishDecision emits the admission outcome. Broker failures are logged by
// the publisher and never affect the response.
func (h *Handler) publishDecision(c *gin.Context, event notify.BookingDecidedEvent) {
	if err := h.publisher.BookingDecided(c.Request.Context(), event); err != nil {
		h.logger.Warn("booking decision not published", "outcome", event.Outcome, "error", err)
	}
}

func (h *Handler) publishTransition(c *gin.Context, b *booking.Booking) {
	h.publishDecision(c, notify.BookingDecidedEvent{
		BookingID:   b.ID,
		ResourceID:  b.ResourceID,
		RequesterID: b.RequesterID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status()),
		Outcome:     string(b.Status()),
	})
}
