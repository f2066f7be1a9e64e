package services

import (
	"context"
	"errors"
	"testing"

	"cleanops_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinnedAccount(radius float64) *models.Account {
	lat, lng := 39.9526, -75.1652
	return &models.Account{ID: 1, Name: "Downtown Office", Lat: &lat, Lng: &lng, GeofenceRadius: radius}
}

func TestVerifyOnSite_WithinRadius(t *testing.T) {
	account := pinnedAccount(200)
	device := Position{Lat: *account.Lat + 0.00027, Lng: *account.Lng} // ~30m

	verdict := VerifyOnSite(device, account)

	assert.True(t, verdict.OnSite)
	assert.False(t, verdict.Bypassed)
	assert.InDelta(t, 30, verdict.DistanceM, 2)
	assert.Equal(t, 200.0, verdict.RadiusM)
}

func TestVerifyOnSite_OutsideRadius(t *testing.T) {
	account := pinnedAccount(50)
	device := Position{Lat: *account.Lat + 0.00072, Lng: *account.Lng} // ~80m

	verdict := VerifyOnSite(device, account)

	assert.False(t, verdict.OnSite)
	assert.InDelta(t, 80, verdict.DistanceM, 2)
	assert.Equal(t, 50.0, verdict.RadiusM)
}

func TestVerifyOnSite_BypassesUnpinnedAccount(t *testing.T) {
	account := &models.Account{ID: 1, Name: "No Pin Yet"}

	verdict := VerifyOnSite(Position{}, account)

	assert.True(t, verdict.OnSite)
	assert.True(t, verdict.Bypassed)
}

func TestVerifyOnSite_EnforcesMinimumRadius(t *testing.T) {
	// A 1m fence stored before clamping still verifies against the 5m floor.
	account := pinnedAccount(1)
	device := Position{Lat: *account.Lat, Lng: *account.Lng + 0.00004} // ~3.4m

	verdict := VerifyOnSite(device, account)

	assert.True(t, verdict.OnSite)
	assert.Equal(t, models.MinGeofenceRadiusM, verdict.RadiusM)
}

func TestVerifyOnSite_ZeroRadiusUsesDefault(t *testing.T) {
	account := pinnedAccount(0)
	device := Position{Lat: *account.Lat + 0.0009, Lng: *account.Lng} // ~100m

	verdict := VerifyOnSite(device, account)

	assert.True(t, verdict.OnSite)
	assert.Equal(t, models.DefaultGeofenceRadiusM, verdict.RadiusM)
}

func TestAcquirePosition_NilProvider(t *testing.T) {
	_, err := acquirePosition(context.Background(), nil)
	assert.ErrorIs(t, err, ErrGeolocation)
}

func TestAcquirePosition_ProviderErrorIsWrapped(t *testing.T) {
	denied := errors.New("permission denied")
	provider := func(ctx context.Context) (Position, error) {
		return Position{}, denied
	}

	_, err := acquirePosition(context.Background(), provider)
	assert.ErrorIs(t, err, ErrGeolocation)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestAcquirePosition_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := func(ctx context.Context) (Position, error) {
		<-ctx.Done()
		return Position{}, ctx.Err()
	}

	_, err := acquirePosition(ctx, provider)
	assert.ErrorIs(t, err, ErrGeolocation)
}

func TestAcquirePosition_ReturnsFix(t *testing.T) {
	pos, err := acquirePosition(context.Background(), StaticPosition(Position{Lat: 1, Lng: 2}))
	require.NoError(t, err)
	assert.Equal(t, Position{Lat: 1, Lng: 2}, pos)
}
