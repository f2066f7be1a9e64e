package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleanops_backend/internal/models"
	"cleanops_backend/pkg/timeutil"
)

// GeolocationTimeout bounds how long a position request may take. A request
// that exceeds it fails with ErrGeolocation; it is never retried and never
// treated as on-site.
const GeolocationTimeout = 10 * time.Second

// ErrGeolocation is returned when the device position could not be obtained
// (denied, timed out, or unsupported).
var ErrGeolocation = errors.New("device position unavailable")

// Position is a device fix in decimal degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PositionProvider obtains the device position. The HTTP layer supplies one
// backed by coordinates posted with the request; other transports may block,
// so providers must honor ctx cancellation.
type PositionProvider func(ctx context.Context) (Position, error)

// StaticPosition returns a provider that yields a fix already in hand.
func StaticPosition(pos Position) PositionProvider {
	return func(ctx context.Context) (Position, error) {
		return pos, nil
	}
}

// acquirePosition runs the provider under the geolocation timeout with no
// cached fix: every call goes back to the provider.
func acquirePosition(ctx context.Context, provider PositionProvider) (Position, error) {
	if provider == nil {
		return Position{}, ErrGeolocation
	}
	ctx, cancel := context.WithTimeout(ctx, GeolocationTimeout)
	defer cancel()

	pos, err := provider(ctx)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrGeolocation, err)
	}
	return pos, nil
}

// GeofenceResult is the verdict of an on-site verification.
type GeofenceResult struct {
	OnSite    bool    `json:"onSite"`
	Bypassed  bool    `json:"bypassed"` // account has no registered coordinates
	DistanceM float64 `json:"distanceMeters"`
	RadiusM   float64 `json:"radiusMeters"`
}

// VerifyOnSite decides whether an on-site action is permitted at the given
// account from the given device position. Accounts without coordinates
// cannot be geofenced, so verification is bypassed (fail-open) with the
// Bypassed flag set for the caller to surface as a warning.
func VerifyOnSite(device Position, account *models.Account) GeofenceResult {
	if !account.HasCoordinates() {
		return GeofenceResult{OnSite: true, Bypassed: true}
	}

	radius := account.EffectiveRadius()
	distance := timeutil.HaversineKm(device.Lat, device.Lng, *account.Lat, *account.Lng) * 1000

	return GeofenceResult{
		OnSite:    distance <= radius,
		DistanceM: distance,
		RadiusM:   radius,
	}
}

// OutOfRangeError reports a device position that was obtained but falls
// outside the account's geofence. It carries the measured distance and the
// required radius so the caller can show both.
type OutOfRangeError struct {
	DistanceM float64
	RadiusM   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("device is %.0fm from the site, outside the %.0fm geofence", e.DistanceM, e.RadiusM)
}
