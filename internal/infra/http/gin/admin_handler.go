package ginserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"archatara/internal/app/admin"
	"archatara/internal/app/services/auth"
	"archatara/internal/domain/catalog"
	"archatara/internal/domain/reservation"
)

// AdminHandler serves the management surface. Every route except Login
// sits behind the bearer-token middleware.
type AdminHandler struct {
	Auth    *auth.Service
	Service *admin.Service
	Catalog *catalog.Catalog
	Clock   func() time.Time
}

var _ AdminHTTP = &AdminHandler{}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateReservationRequest struct {
	CustomerName  *string `json:"customerName"`
	CustomerPhone *string `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail"`
}

type settingsRequest struct {
	WeekendOnlyMode        *bool   `json:"weekendOnlyMode" binding:"required"`
	AdminNotificationEmail *string `json:"adminNotificationEmail"`
}

type reservationResponse struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	TypeID        string `json:"typeId"`
	UnitID        string `json:"unitId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	HasExtraBed   bool   `json:"hasExtraBed"`
	SlipImage     string `json:"slipImage,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if err := h.Auth.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns every reservation, newest first, without slip payloads.
func (h *AdminHandler) List(c *gin.Context) {
	items := h.Service.Reservations()
	out := make([]reservationResponse, 0, len(items))
	for _, rec := range items {
		out = append(out, toReservationResponse(rec, false))
	}
	c.JSON(http.StatusOK, gin.H{"reservations": out, "mode": h.Service.Mode()})
}

// Get returns one reservation including the payment slip.
func (h *AdminHandler) Get(c *gin.Context) {
	rec, err := h.Service.Reservation(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(rec, true))
}

func (h *AdminHandler) Confirm(c *gin.Context) {
	h.setStatus(c, h.Service.Confirm)
}

func (h *AdminHandler) Reject(c *gin.Context) {
	h.setStatus(c, h.Service.Reject)
}

func (h *AdminHandler) setStatus(c *gin.Context, apply func(ctx context.Context, id string) error) {
	if err := apply(c.Request.Context(), c.Param("id")); err != nil {
		writeAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) Update(c *gin.Context) {
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	update := reservation.FieldUpdate{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
	}
	if err := h.Service.UpdateCustomer(c.Request.Context(), c.Param("id"), update); err != nil {
		writeAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) DeleteAll(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pass confirm=true to delete every reservation"})
		return
	}
	if err := h.Service.DeleteAll(c.Request.Context()); err != nil {
		writeAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Calendar groups the month's active bookings per day. Defaults to the
// current month when year and month are omitted.
func (h *AdminHandler) Calendar(c *gin.Context) {
	now := h.now()
	year, month := now.Year(), now.Month()
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
			return
		}
		year = v
	}
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1 through 12"})
			return
		}
		month = time.Month(v)
	}
	view := admin.MonthCalendar(year, month, h.Service.Reservations())
	c.JSON(http.StatusOK, view)
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	value := h.Service.Settings()
	c.JSON(http.StatusOK, gin.H{
		"weekendOnlyMode":        value.WeekendOnlyMode,
		"adminNotificationEmail": value.AdminNotificationEmail,
	})
}

func (h *AdminHandler) PutSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekendOnlyMode is required"})
		return
	}
	value := h.Service.Settings()
	value.WeekendOnlyMode = *req.WeekendOnlyMode
	if req.AdminNotificationEmail != nil {
		value.AdminNotificationEmail = *req.AdminNotificationEmail
	}
	if err := h.Service.SaveSettings(c.Request.Context(), value); err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"weekendOnlyMode":        value.WeekendOnlyMode,
		"adminNotificationEmail": value.AdminNotificationEmail,
	})
}

// Export streams every reservation as a CSV download.
func (h *AdminHandler) Export(c *gin.Context) {
	filename := admin.ExportFilename(h.now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := admin.ExportCSV(c.Writer, h.Service.Reservations(), h.Catalog); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

func (h *AdminHandler) Summary(c *gin.Context) {
	if err := h.Service.SendSummary(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "summary could not be sent"})
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *AdminHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

func toReservationResponse(rec reservation.Reservation, includeSlip bool) reservationResponse {
	resp := reservationResponse{
		ID:            rec.ID,
		Date:          rec.Date,
		TypeID:        rec.TypeID,
		UnitID:        rec.UnitID,
		CustomerName:  rec.CustomerName,
		CustomerPhone: rec.CustomerPhone,
		CustomerEmail: rec.CustomerEmail,
		HasExtraBed:   rec.HasExtraBed,
		Status:        string(rec.Status),
		CreatedAt:     rec.CreatedAt.UTC().Format(time.RFC3339),
	}
	if includeSlip {
		resp.SlipImage = rec.SlipImage
	}
	return resp
}

func writeAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
	case errors.Is(err, reservation.ErrStatusFinal),
		errors.Is(err, reservation.ErrInvalidStatus):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, reservation.ErrNothingToUpdate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "operation could not be completed"})
	}
}
