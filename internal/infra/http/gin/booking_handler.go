package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"archatara/internal/app/booking"
	"archatara/internal/domain/catalog"
	"archatara/internal/domain/reservation"
	"archatara/internal/infra/store"
)

// BookingHandler exposes a customer workflow session per booking id.
type BookingHandler struct {
	Sessions *booking.Sessions
}

var _ BookingHTTP = &BookingHandler{}

type selectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type selectUnitRequest struct {
	TypeID string `json:"typeId" binding:"required"`
	UnitID string `json:"unitId" binding:"required"`
}

type submitRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	ExtraBed  bool   `json:"extraBed"`
	SlipImage string `json:"slipImage"`
}

func (h *BookingHandler) Start(c *gin.Context) {
	flow := h.Sessions.Start()
	c.JSON(http.StatusCreated, sessionResponse(flow, 0))
}

func (h *BookingHandler) Get(c *gin.Context) {
	flow, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(flow, 0))
}

func (h *BookingHandler) Date(c *gin.Context) {
	flow, ok := h.session(c)
	if !ok {
		return
	}
	var req selectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := flow.SelectDate(req.Date); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(flow, 0))
}

func (h *BookingHandler) Unit(c *gin.Context) {
	flow, ok := h.session(c)
	if !ok {
		return
	}
	var req selectUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := flow.SelectUnit(req.TypeID, req.UnitID); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(flow, 0))
}

func (h *BookingHandler) Submit(c *gin.Context) {
	flow, ok := h.session(c)
	if !ok {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	total, err := flow.Submit(c.Request.Context(), booking.Details{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		ExtraBed:  req.ExtraBed,
		SlipImage: req.SlipImage,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(flow, total))
}

func (h *BookingHandler) Back(c *gin.Context) {
	flow, ok := h.session(c)
	if !ok {
		return
	}
	if err := flow.Back(); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(flow, 0))
}

func (h *BookingHandler) Reset(c *gin.Context) {
	flow, ok := h.session(c)
	if !ok {
		return
	}
	flow.StartOver()
	c.JSON(http.StatusOK, sessionResponse(flow, 0))
}

func (h *BookingHandler) session(c *gin.Context) (*booking.Workflow, bool) {
	flow, err := h.Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return nil, false
	}
	return flow, true
}

func sessionResponse(flow *booking.Workflow, total int) gin.H {
	selected, unitID := flow.Selection()
	resp := gin.H{
		"id":    flow.ID(),
		"state": flow.State(),
	}
	if date := flow.Date(); date != "" {
		resp["date"] = date
	}
	if unitID != "" {
		resp["typeId"] = selected.ID
		resp["unitId"] = unitID
	}
	if total > 0 {
		resp["totalPrice"] = total
	}
	if result := flow.Result(); result != nil {
		resp["reservationId"] = result.ID
	}
	return resp
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrWrongState),
		errors.Is(err, booking.ErrUnitTaken),
		errors.Is(err, store.ErrUnitUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrDateInPast),
		errors.Is(err, booking.ErrWeekendOnly),
		errors.Is(err, booking.ErrEmailRequired),
		errors.Is(err, reservation.ErrInvalidDate),
		errors.Is(err, reservation.ErrNameRequired),
		errors.Is(err, reservation.ErrPhoneRequired),
		errors.Is(err, reservation.ErrUnitRequired),
		errors.Is(err, reservation.ErrSlipRequired),
		errors.Is(err, reservation.ErrSlipTooLarge),
		errors.Is(err, catalog.ErrExtraBedNotAllowed),
		errors.Is(err, catalog.ErrTypeNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "reservation could not be saved"})
	}
}
