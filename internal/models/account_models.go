package models

import "time"

// Geofence defaults. Radius is clamped on write and again when verifying,
// so an account row predating the clamp can never yield a sub-5m fence.
const (
	DefaultGeofenceRadiusM = 200.0
	MinGeofenceRadiusM     = 5.0
)

// Account represents a client site. Lat/Lng are nullable: a site without a
// registered pin cannot be geofenced and on-site checks bypass with a warning.
type Account struct {
	ID             int64     `json:"id"`
	Owner          string    `json:"owner" db:"owner"`
	Name           string    `json:"name" db:"name"`
	Address        *string   `json:"address,omitempty" db:"address"`
	Lat            *float64  `json:"lat,omitempty" db:"lat"`
	Lng            *float64  `json:"lng,omitempty" db:"lng"`
	GeofenceRadius float64   `json:"geofenceRadius" db:"geofence_radius_m"`
	MonthlyBilling *float64  `json:"monthlyBilling,omitempty" db:"monthly_billing"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// HasCoordinates reports whether the account has a registered pin.
func (a *Account) HasCoordinates() bool {
	return a != nil && a.Lat != nil && a.Lng != nil
}

// EffectiveRadius returns the geofence radius in meters with the default
// applied when unset and the minimum floor enforced.
func (a *Account) EffectiveRadius() float64 {
	r := a.GeofenceRadius
	if r <= 0 {
		r = DefaultGeofenceRadiusM
	}
	if r < MinGeofenceRadiusM {
		r = MinGeofenceRadiusM
	}
	return r
}
