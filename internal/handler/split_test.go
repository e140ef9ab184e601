package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"geosplit/internal/models"
	"geosplit/internal/quadtree"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSplitService is a mock implementation of the SplitService interface
type MockSplitService struct {
	mock.Mock
}

func (m *MockSplitService) Partition(points []models.Point, bounds quadtree.Bounds, capacity int) ([]quadtree.Leaf, error) {
	args := m.Called(points, bounds, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quadtree.Leaf), args.Error(1)
}

func performSplit(t *testing.T, svc SplitService, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.POST("/split", NewSplitHandler(svc).Split)

	req := httptest.NewRequest(http.MethodPost, "/split", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSplitHandler_Split(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid request body", func(t *testing.T) {
		mockService := new(MockSplitService)
		w := performSplit(t, mockService, `{not json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Partition")
	})

	t.Run("invalid capacity", func(t *testing.T) {
		mockService := new(MockSplitService)
		mockService.On("Partition", mock.Anything, quadtree.Globe, -1).
			Return(nil, quadtree.ErrInvalidCapacity)

		w := performSplit(t, mockService, `{"capacity": -1, "points": []}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body gin.H
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "capacity must be a positive integer", body["error"])
		mockService.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockService := new(MockSplitService)
		mockService.On("Partition", mock.Anything, quadtree.Globe, 2).
			Return(nil, assert.AnError)

		w := performSplit(t, mockService, `{"capacity": 2, "points": []}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("successful partition with default bounds", func(t *testing.T) {
		points := []models.Point{
			{Latitude: 10, Longitude: 10, Payload: "a"},
			{Latitude: -10, Longitude: -10, Payload: "b"},
		}
		leaves := []quadtree.Leaf{
			{Path: quadtree.Path{quadtree.SouthWest}, Points: points[1:]},
			{Path: quadtree.Path{quadtree.NorthEast}, Points: points[:1]},
		}

		mockService := new(MockSplitService)
		mockService.On("Partition", points, quadtree.Globe, 1).Return(leaves, nil)

		w := performSplit(t, mockService,
			`{"capacity": 1, "points": [`+
				`{"latitude": 10, "longitude": 10, "payload": "a"},`+
				`{"latitude": -10, "longitude": -10, "payload": "b"}]}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp SplitResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.PointCount)
		assert.Equal(t, 2, resp.LeafCount)
		require.Len(t, resp.Leaves, 2)
		assert.Equal(t, "rootSW", resp.Leaves[0].ID)
		assert.Equal(t, "rootNE", resp.Leaves[1].ID)
		mockService.AssertExpectations(t)
	})

	t.Run("explicit bounds are forwarded", func(t *testing.T) {
		bounds := quadtree.Bounds{MinLat: 30, MaxLat: 40, MinLon: 130, MaxLon: 145}

		mockService := new(MockSplitService)
		mockService.On("Partition", mock.Anything, bounds, 10).Return([]quadtree.Leaf{}, nil)

		w := performSplit(t, mockService,
			`{"capacity": 10, "points": [],`+
				`"bounds": {"min_latitude": 30, "max_latitude": 40, "min_longitude": 130, "max_longitude": 145}}`)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}
