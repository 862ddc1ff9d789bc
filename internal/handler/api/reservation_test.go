//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"booking-board/internal/domain/requester"
	"booking-board/internal/handler/api"
	"booking-board/internal/usecase/commands"
	"booking-board/internal/usecase/queries"
	"booking-board/tests/common/httptest"
	commandsmock "booking-board/tests/mock/commands"
	queriesmock "booking-board/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler

	requesterID uuid.UUID
	role        requester.Role
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.requesterID = uuid.New()
	s.role = requester.RoleMember

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("requester_id", s.requesterID)
		c.Set("requester_role", s.role)
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, s.handler.CreateReservation)
	s.router.DELETE("/reservations/:id", authMiddleware, s.handler.CancelReservation)
	s.router.GET("/reservations/remaining", authMiddleware, s.handler.GetRemainingSlots)
	s.router.GET("/resources/:id/lock", authMiddleware, s.handler.GetResourceLock)
	s.router.GET("/resources/:id/schedule", authMiddleware, s.handler.GetResourceSchedule)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) createBody() map[string]any {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return map[string]any{
		"resource_id": uuid.New().String(),
		"start_time":  start.Format(time.RFC3339),
		"end_time":    start.Add(2 * time.Hour).Format(time.RFC3339),
	}
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	s.Run("success: returns 201 with reservation id", func() {
		result := &commands.CreateReservationResult{ReservationID: uuid.New()}
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateReservationInput) (*commands.CreateReservationResult, error) {
				s.Equal(s.requesterID, in.RequesterID)
				s.False(in.Privileged)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody(), "token")
		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), result.ReservationID.String())
	})

	s.Run("privileged role is threaded into the command", func() {
		s.role = requester.RoleAdmin
		defer func() { s.role = requester.RoleMember }()

		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateReservationInput) (*commands.CreateReservationResult, error) {
				s.True(in.Privileged)
				return &commands.CreateReservationResult{ReservationID: uuid.New()}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody(), "token")
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody(), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("malformed body returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"resource_id": "not-a-uuid"}, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error mapping", func() {
		holderID := uuid.New()
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectBody string
		}{
			{name: "invalid interval", err: commands.ErrInvalidInterval, expectCode: http.StatusBadRequest},
			{name: "resource not found", err: commands.ErrResourceNotFound, expectCode: http.StatusNotFound},
			{name: "quota exceeded", err: commands.ErrQuotaExceeded, expectCode: http.StatusUnprocessableEntity},
			{name: "conflict names holder", err: commands.NewConflictError(commands.ErrConflict, holderID), expectCode: http.StatusConflict, expectBody: holderID.String()},
			{name: "parent conflict", err: commands.NewConflictError(commands.ErrParentConflict, holderID), expectCode: http.StatusConflict, expectBody: "Parent resource"},
			{name: "child conflict", err: commands.NewConflictError(commands.ErrChildConflict, holderID), expectCode: http.StatusConflict, expectBody: "sub-resource"},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody(), "token")
				s.Equal(tc.expectCode, rec.Code)
				if tc.expectBody != "" {
					s.Contains(rec.Body.String(), tc.expectBody)
				}
			})
		}
	})
}

// ================================================================================
// TestCancelReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	reservationID := uuid.New()
	url := "/reservations/" + reservationID.String()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), reservationID, s.requesterID, false).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("invalid id returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/not-a-uuid", nil, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("not found", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), reservationID, s.requesterID, false).
			Return(commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("forbidden", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), reservationID, s.requesterID, false).
			Return(commands.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

// ================================================================================
// TestGetResourceLock
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetResourceLock() {
	resourceID := uuid.New()
	url := "/resources/" + resourceID.String() + "/lock"

	s.Run("success: locked view", func() {
		holderID := uuid.New()
		view := &queries.LockProjectionView{
			ResourceID: resourceID,
			Locked:     true,
			HolderID:   &holderID,
		}
		s.mockQueries.EXPECT().LockProjection(gomock.Any(), resourceID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), holderID.String())
	})

	s.Run("unknown resource", func() {
		s.mockQueries.EXPECT().LockProjection(gomock.Any(), resourceID).
			Return(nil, queries.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestGetResourceSchedule
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetResourceSchedule() {
	resourceID := uuid.New()
	url := "/resources/" + resourceID.String() + "/schedule"

	s.Run("success: returns items", func() {
		items := []*queries.ScheduleItem{
			{ID: uuid.New(), ResourceID: resourceID, RequesterID: uuid.New(), Status: "active"},
		}
		s.mockQueries.EXPECT().Schedule(gomock.Any(), resourceID).Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), items[0].ID.String())
	})

	s.Run("empty schedule", func() {
		s.mockQueries.EXPECT().Schedule(gomock.Any(), resourceID).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		s.Equal(http.StatusOK, rec.Code)
	})
}

// ================================================================================
// TestGetRemainingSlots
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetRemainingSlots() {
	url := "/reservations/remaining"

	s.Run("success", func() {
		s.mockQueries.EXPECT().RemainingSlots(gomock.Any(), s.requesterID).Return(3, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"remaining":3`)
	})
}
