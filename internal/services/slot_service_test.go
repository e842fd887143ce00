package services

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Williamwenda/FoodSlotMachine/internal/catalog"
	"github.com/Williamwenda/FoodSlotMachine/internal/engine"
	"github.com/Williamwenda/FoodSlotMachine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localFactory(poolSize int) MachineFactory {
	return func(presenter engine.Presenter) *engine.Machine {
		return engine.NewMachine(engine.Config{
			PoolSize: poolSize,
			Rand:     rand.New(rand.NewPCG(1, 2)),
		}, presenter)
	}
}

func TestSlotService_Spin(t *testing.T) {
	const testTenantID = "test-tenant"
	ctx := context.Background()
	service := NewSlotService(localFactory(0))

	t.Run("Test first visit resolves the local catalog", func(t *testing.T) {
		view := service.Session(ctx, testTenantID)
		require.NoError(t, view.Err)
		assert.True(t, view.Ready)
		assert.False(t, view.Status.Connected)
		assert.Equal(t, 5, view.Status.ItemCount)
		assert.Equal(t, 5, view.Pool.Size)
		assert.Nil(t, view.LastResult)
	})

	t.Run("Test successful spin is recorded", func(t *testing.T) {
		result, err := service.Spin(ctx, testTenantID)
		require.NoError(t, err)

		view := service.Session(ctx, testTenantID)
		require.NotNil(t, view.LastResult)
		assert.Equal(t, result, *view.LastResult)
	})

	t.Run("Test sessions are independent", func(t *testing.T) {
		other := service.Session(ctx, "other-tenant")
		assert.Nil(t, other.LastResult)
		assert.Equal(t, 2, service.SessionCount())
	})

	t.Run("Test clearing a session", func(t *testing.T) {
		service.ClearSession(testTenantID)
		assert.Equal(t, 1, service.SessionCount())

		view := service.Session(ctx, testTenantID)
		assert.Nil(t, view.LastResult)
	})
}

func TestSlotService_TestingPool(t *testing.T) {
	service := NewSlotService(localFactory(2))
	view := service.Session(context.Background(), "t")

	assert.True(t, view.Pool.Testing)
	assert.Equal(t, 2, view.Pool.Size)
	assert.Equal(t, 4, view.Pool.OneIn)
	assert.InDelta(t, 0.25, view.Pool.Probability, 1e-12)
}

func TestSlotService_InsufficientCatalog(t *testing.T) {
	service := NewSlotService(func(presenter engine.Presenter) *engine.Machine {
		return engine.NewMachine(engine.Config{
			Local: catalog.NewLocalProvider(models.FoodRecord{ID: "only"}),
		}, presenter)
	})

	view := service.Session(context.Background(), "t")
	assert.False(t, view.Ready)
	assert.ErrorIs(t, view.Err, catalog.ErrInsufficientPool)

	_, err := service.Spin(context.Background(), "t")
	assert.ErrorIs(t, err, catalog.ErrInsufficientPool)
}

func TestSlotService_SetEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
			{"id": 1, "name": "Pad Thai"},
			{"id": 2, "name": "Beef Tacos"},
			{"id": 3, "name": "Greek Gyro"},
			{"id": 4, "name": "Churros"},
		}})
	}))
	defer srv.Close()

	ctx := context.Background()
	service := NewSlotService(localFactory(0))

	_, err := service.SetEndpoint(ctx, "t", "")
	assert.ErrorIs(t, err, engine.ErrEmptyEndpoint)

	view, err := service.SetEndpoint(ctx, "t", srv.URL)
	require.NoError(t, err)
	assert.True(t, view.Status.Connected)
	assert.Equal(t, 4, view.Status.ItemCount)
	assert.Equal(t, srv.URL, view.Endpoint)

	// A later page load does not undo the endpoint change.
	view = service.Session(ctx, "t")
	assert.True(t, view.Status.Connected)

	result, err := service.Spin(ctx, "t")
	require.NoError(t, err)
	for _, food := range result.Foods {
		assert.Equal(t, models.SourceAPI, food.Source)
	}
}

func TestSlotService_CleanUpInactiveSessions(t *testing.T) {
	service := NewSlotService(localFactory(0))
	service.Session(context.Background(), "stale")
	service.Session(context.Background(), "fresh")

	service.getSession("stale").lastActivity = time.Now().Add(-2 * time.Hour)

	removed := service.CleanUpInactiveSessions(time.Hour)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, service.SessionCount())
}
