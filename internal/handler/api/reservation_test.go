//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"secondhand-market/internal/domain/trade"
	"secondhand-market/internal/handler/api"
	resdto "secondhand-market/internal/handler/dto/response"
	"secondhand-market/internal/usecase/commands"
	"secondhand-market/internal/usecase/queries"
	"secondhand-market/tests/common/builder"
	"secondhand-market/tests/common/httptest"
	"secondhand-market/tests/common/testutil"
	commandsmock "secondhand-market/tests/mock/commands"
	queriesmock "secondhand-market/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockTradeCommands
	mockQueries  *queriesmock.MockTradeQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockTradeCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockTradeQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/reservations", s.handler.CreateReservation)
	s.router.GET("/reservations", s.handler.ListReservations)
	s.router.GET("/reservations/:id", s.handler.GetReservation)
	s.router.PATCH("/reservations/:id", s.handler.UpdateReservationStatus)
	s.router.DELETE("/reservations/:id", s.handler.DeleteReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	s.Run("success: returns 201 Created with the fresh view", func() {
		b := builder.NewReservationBuilder()
		reqBody := b.BuildCreateRequestDTO()
		returnView := b.BuildViewQuery()

		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), b.BuyerID, b.ProductID).
			Return(returnView.ID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal(string(trade.StatusRequested), body.Status)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()

		for _, field := range []string{"buyerId", "productId"} {
			s.Run("missing "+field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	commandErrs := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "unknown buyer", err: commands.ErrUserNotFound, expectCode: http.StatusNotFound},
		{name: "unknown product", err: commands.ErrProductNotFound, expectCode: http.StatusNotFound},
		{name: "own product", err: commands.ErrOwnProduct, expectCode: http.StatusForbidden},
		{name: "product reserved", err: commands.ErrProductNotReservable, expectCode: http.StatusConflict},
		{name: "duplicate reservation", err: commands.ErrReservationExists, expectCode: http.StatusConflict},
	}

	for _, tc := range commandErrs {
		s.Run("error: "+tc.name, func() {
			b := builder.NewReservationBuilder()
			s.mockCommands.EXPECT().CreateReservation(gomock.Any(), b.BuyerID, b.ProductID).
				Return(uuid.Nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildCreateRequestDTO())
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("success: returns 200 OK", func() {
		returnView := builder.NewReservationBuilder().BuildViewQuery()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+returnView.ID.String(), nil)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal(returnView.BuyerID, body.BuyerID)
	})

	s.Run("error: 404 Not Found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, queries.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestListReservations
// ================================================================================

func (s *ReservationHandlerTestSuite) TestListReservations() {
	s.Run("success: filters by buyer", func() {
		b := builder.NewReservationBuilder()
		views := []*queries.ReservationView{b.BuildViewQuery()}
		s.mockQueries.EXPECT().ListByBuyer(gomock.Any(), b.BuyerID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?buyerId="+b.BuyerID.String(), nil)

		var body []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal(b.ID, body[0].ID)
	})

	s.Run("success: filters by seller", func() {
		b := builder.NewReservationBuilder()
		s.mockQueries.EXPECT().ListBySeller(gomock.Any(), b.SellerID).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?sellerId="+b.SellerID.String(), nil)

		var body []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})

	s.Run("success: filters by product", func() {
		b := builder.NewReservationBuilder()
		views := []*queries.ReservationView{b.BuildViewQuery()}
		s.mockQueries.EXPECT().ListByProduct(gomock.Any(), b.ProductID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?productId="+b.ProductID.String(), nil)

		var body []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("error: 400 without any filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on malformed filter id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?buyerId=oops", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestUpdateReservationStatus
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdateReservationStatus() {
	s.Run("success: returns 200 OK with updated view", func() {
		b := builder.NewReservationBuilder().WithStatus(trade.StatusAccepted)
		returnView := b.BuildViewQuery()
		reqBody := b.BuildUpdateStatusRequestDTO(trade.StatusAccepted, b.SellerID)

		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), b.ID, trade.StatusAccepted, b.SellerID).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID).Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+b.ID.String(), reqBody)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(string(trade.StatusAccepted), body.Status)
	})

	s.Run("success: wire status is case-insensitive", func() {
		b := builder.NewReservationBuilder().WithStatus(trade.StatusAccepted)
		returnView := b.BuildViewQuery()
		requestMap := testutil.DtoMap(s.T(), b.BuildUpdateStatusRequestDTO(trade.StatusAccepted, b.SellerID),
			testutil.Field("status", "accepted"))

		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), b.ID, trade.StatusAccepted, b.SellerID).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID).Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+b.ID.String(), requestMap)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	commandErrs := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "reservation not found", err: commands.ErrReservationNotFound, expectCode: http.StatusNotFound},
		{name: "actor not allowed", err: commands.ErrForbidden, expectCode: http.StatusForbidden},
		{name: "wrong current status", err: commands.ErrInvalidState, expectCode: http.StatusConflict},
		{name: "unknown target", err: commands.ErrInvalidTransition, expectCode: http.StatusBadRequest},
	}

	for _, tc := range commandErrs {
		s.Run("error: "+tc.name, func() {
			b := builder.NewReservationBuilder()
			reqBody := b.BuildUpdateStatusRequestDTO(trade.StatusAccepted, b.SellerID)

			s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), b.ID, trade.StatusAccepted, b.SellerID).
				Return(tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+b.ID.String(), reqBody)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}

	s.Run("error: 400 on missing actorId", func() {
		b := builder.NewReservationBuilder()
		requestMap := testutil.DtoMap(s.T(), b.BuildUpdateStatusRequestDTO(trade.StatusAccepted, b.SellerID),
			testutil.Field("actorId", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+b.ID.String(), requestMap)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestDeleteReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestDeleteReservation() {
	s.Run("success: returns 204 No Content", func() {
		b := builder.NewReservationBuilder()
		s.mockCommands.EXPECT().DeleteReservation(gomock.Any(), b.ID, b.BuyerID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+b.ID.String(),
			map[string]any{"actorId": b.BuyerID.String()})
		s.Equal(http.StatusNoContent, rec.Code)
	})

	commandErrs := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "reservation not found", err: commands.ErrReservationNotFound, expectCode: http.StatusNotFound},
		{name: "not the buyer", err: commands.ErrForbidden, expectCode: http.StatusForbidden},
		{name: "not deletable in this status", err: commands.ErrInvalidState, expectCode: http.StatusConflict},
	}

	for _, tc := range commandErrs {
		s.Run("error: "+tc.name, func() {
			b := builder.NewReservationBuilder()
			s.mockCommands.EXPECT().DeleteReservation(gomock.Any(), b.ID, b.BuyerID).Return(tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+b.ID.String(),
				map[string]any{"actorId": b.BuyerID.String()})
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}
}
