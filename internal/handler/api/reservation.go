package api

import (
	"errors"
	"net/http"

	reqdto "secondhand-market/internal/handler/dto/request"
	resdto "secondhand-market/internal/handler/dto/response"
	"secondhand-market/internal/handler/httperr"
	"secondhand-market/internal/pkg/errs"
	"secondhand-market/internal/usecase/commands"
	"secondhand-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.TradeCommands
	q    queries.TradeQueries
}

func NewReservationHandler(cmds commands.TradeCommands, q queries.TradeQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Request a trade
// @Description Create a reservation for a product on behalf of a buyer
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	reservationID, err := h.cmds.CreateReservation(c.Request.Context(), req.BuyerID, req.ProductID)
	if err != nil {
		abortCommandError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), reservationID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load reservation", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Description Get a reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load reservation", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List reservations by buyer, seller or product
// @Tags reservations
// @Produce json
// @Param buyerId query string false "Buyer ID"
// @Param sellerId query string false "Seller ID"
// @Param productId query string false "Product ID"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var (
		views []*queries.ReservationView
		err   error
	)

	switch {
	case c.Query("buyerId") != "":
		var buyerID uuid.UUID
		if buyerID, err = uuid.Parse(c.Query("buyerId")); err == nil {
			views, err = h.q.ListByBuyer(c.Request.Context(), buyerID)
		}
	case c.Query("sellerId") != "":
		var sellerID uuid.UUID
		if sellerID, err = uuid.Parse(c.Query("sellerId")); err == nil {
			views, err = h.q.ListBySeller(c.Request.Context(), sellerID)
		}
	case c.Query("productId") != "":
		var productID uuid.UUID
		if productID, err = uuid.Parse(c.Query("productId")); err == nil {
			views, err = h.q.ListByProduct(c.Request.Context(), productID)
		}
	default:
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing filter"),
			"One of buyerId, sellerId or productId is required", nil)
		return
	}

	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filter", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Transition reservation status
// @Description Apply a lifecycle transition (accept/decline/cancel/complete) on behalf of an actor
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationStatusRequest true "Transition request"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id} [patch]
func (h *ReservationHandler) UpdateReservationStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.UpdateReservationStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.UpdateStatus(c.Request.Context(), id, req.TargetStatus(), req.ActorID); err != nil {
		abortCommandError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load reservation", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Delete reservation
// @Description Delete a reservation on behalf of its buyer
// @Tags reservations
// @Accept json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.DeleteReservationRequest true "Delete request"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.DeleteReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.DeleteReservation(c.Request.Context(), id, req.ActorID); err != nil {
		abortCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func abortCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
	case errors.Is(err, commands.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
	case errors.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, commands.ErrOwnProduct):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Cannot reserve own product", nil)
	case errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Actor may not perform this action", nil)
	case errors.Is(err, commands.ErrProductNotReservable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Product is not reservable", nil)
	case errors.Is(err, commands.ErrReservationExists):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation already exists for this product", nil)
	case errors.Is(err, commands.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Action not allowed in current status", nil)
	case errors.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid transition target", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
