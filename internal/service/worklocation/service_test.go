package worklocation

import (
	"context"
	"testing"

	"github.com/dokterku/klinik-backend-go/internal/config"
	"github.com/dokterku/klinik-backend-go/internal/domain/worklocation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkLocationRepo struct {
	locations []worklocation.WorkLocation
}

func (f *fakeWorkLocationRepo) Create(_ context.Context, location worklocation.WorkLocation) (worklocation.WorkLocation, error) {
	location.ID = uuid.NewString()
	f.locations = append(f.locations, location)
	return location, nil
}

func (f *fakeWorkLocationRepo) GetByID(_ context.Context, id string) (worklocation.WorkLocation, error) {
	for _, loc := range f.locations {
		if loc.ID == id {
			return loc, nil
		}
	}
	return worklocation.WorkLocation{}, worklocation.ErrWorkLocationNotFound
}

func (f *fakeWorkLocationRepo) ListActive(_ context.Context) ([]worklocation.WorkLocation, error) {
	var out []worklocation.WorkLocation
	for _, loc := range f.locations {
		if loc.IsActive {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (f *fakeWorkLocationRepo) List(_ context.Context) ([]worklocation.WorkLocation, error) {
	return f.locations, nil
}

func (f *fakeWorkLocationRepo) Update(_ context.Context, location worklocation.WorkLocation) error {
	for i, loc := range f.locations {
		if loc.ID == location.ID {
			f.locations[i] = location
			return nil
		}
	}
	return worklocation.ErrWorkLocationNotFound
}

func (f *fakeWorkLocationRepo) Delete(_ context.Context, id string) error {
	for i, loc := range f.locations {
		if loc.ID == id {
			f.locations = append(f.locations[:i], f.locations[i+1:]...)
			return nil
		}
	}
	return worklocation.ErrWorkLocationNotFound
}

// Klinik Pusat sits at Monas; the test coordinates are offsets from it.
const (
	clinicLat = -6.175392
	clinicLon = 106.827153
)

func newMatcherFixture(locations ...worklocation.WorkLocation) worklocation.WorkLocationService {
	repo := &fakeWorkLocationRepo{locations: locations}
	cfg := config.AttendanceConfig{MaxAccuracyMeters: 50}
	return NewWorkLocationService(repo, cfg)
}

func clinicLocation() worklocation.WorkLocation {
	return worklocation.WorkLocation{
		ID:           "loc-pusat",
		Name:         "Klinik Pusat",
		Type:         worklocation.LocationTypeMainOffice,
		Latitude:     clinicLat,
		Longitude:    clinicLon,
		RadiusMeters: 100,
		IsActive:     true,
	}
}

func TestMatch_InsideRadius(t *testing.T) {
	service := newMatcherFixture(clinicLocation())

	// ~55 m east of the clinic.
	result, err := service.Match(context.Background(), clinicLat, clinicLon+0.0005, 10)
	require.NoError(t, err)

	require.NotNil(t, result.Location)
	assert.Equal(t, "Klinik Pusat", result.Location.Name)
	assert.InDelta(t, 55, result.DistanceMeters, 5)
}

func TestMatch_ExactlyAtCenter(t *testing.T) {
	service := newMatcherFixture(clinicLocation())

	result, err := service.Match(context.Background(), clinicLat, clinicLon, 10)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.DistanceMeters)
}

func TestMatch_OutsideRadius(t *testing.T) {
	service := newMatcherFixture(clinicLocation())

	// ~150 m north against a 100 m radius.
	result, err := service.Match(context.Background(), clinicLat+0.00135, clinicLon, 10)
	assert.ErrorIs(t, err, worklocation.ErrOutsideRadius)

	// The rejection carries the nearest distance for the error payload.
	assert.InDelta(t, 150, result.DistanceMeters, 5)
	assert.Nil(t, result.Location)
}

func TestMatch_AccuracyGateBeforeDistance(t *testing.T) {
	service := newMatcherFixture(clinicLocation())

	// Standing at the exact center but with 200 m reported accuracy:
	// the accuracy gate must fire, not the distance check.
	_, err := service.Match(context.Background(), clinicLat, clinicLon, 200)
	assert.ErrorIs(t, err, worklocation.ErrAccuracyTooLow)
}

func TestMatch_AccuracyAtLimit(t *testing.T) {
	service := newMatcherFixture(clinicLocation())

	// Exactly at the configured maximum is still acceptable.
	_, err := service.Match(context.Background(), clinicLat, clinicLon, 50)
	assert.NoError(t, err)
}

func TestMatch_SkipsInactiveLocations(t *testing.T) {
	inactive := clinicLocation()
	inactive.IsActive = false
	service := newMatcherFixture(inactive)

	_, err := service.Match(context.Background(), clinicLat, clinicLon, 10)
	assert.ErrorIs(t, err, worklocation.ErrOutsideRadius)
}

func TestMatch_FirstContainingLocationWins(t *testing.T) {
	branch := worklocation.WorkLocation{
		ID:           "loc-cabang",
		Name:         "Klinik Cabang",
		Type:         worklocation.LocationTypeBranch,
		Latitude:     clinicLat,
		Longitude:    clinicLon,
		RadiusMeters: 500,
		IsActive:     true,
	}
	service := newMatcherFixture(branch, clinicLocation())

	result, err := service.Match(context.Background(), clinicLat, clinicLon, 10)
	require.NoError(t, err)
	assert.Equal(t, "Klinik Cabang", result.Location.Name)
}

func TestMatch_NoLocationsConfigured(t *testing.T) {
	service := newMatcherFixture()

	_, err := service.Match(context.Background(), clinicLat, clinicLon, 10)
	assert.ErrorIs(t, err, worklocation.ErrOutsideRadius)
}

func TestCreateWorkLocation(t *testing.T) {
	repo := &fakeWorkLocationRepo{}
	service := NewWorkLocationService(repo, config.AttendanceConfig{MaxAccuracyMeters: 50})

	resp, err := service.CreateWorkLocation(context.Background(), worklocation.CreateWorkLocationRequest{
		Name:         "Klinik Cabang Selatan",
		Type:         "branch",
		Latitude:     -6.3,
		Longitude:    106.8,
		RadiusMeters: 75,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "branch", resp.Type)
	assert.True(t, resp.IsActive)
}

func TestCreateWorkLocation_Invalid(t *testing.T) {
	repo := &fakeWorkLocationRepo{}
	service := NewWorkLocationService(repo, config.AttendanceConfig{MaxAccuracyMeters: 50})

	_, err := service.CreateWorkLocation(context.Background(), worklocation.CreateWorkLocationRequest{
		Name:         "",
		Latitude:     -6.3,
		Longitude:    106.8,
		RadiusMeters: 0,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "radius_meters")
}

func TestUpdateWorkLocation_Deactivate(t *testing.T) {
	location := clinicLocation()
	repo := &fakeWorkLocationRepo{locations: []worklocation.WorkLocation{location}}
	service := NewWorkLocationService(repo, config.AttendanceConfig{MaxAccuracyMeters: 50})

	inactive := false
	resp, err := service.UpdateWorkLocation(context.Background(), worklocation.UpdateWorkLocationRequest{
		ID:       location.ID,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	// Deactivation takes effect on the next match.
	_, err = service.Match(context.Background(), clinicLat, clinicLon, 10)
	assert.ErrorIs(t, err, worklocation.ErrOutsideRadius)
}

func TestUpdateWorkLocation_NotFound(t *testing.T) {
	repo := &fakeWorkLocationRepo{}
	service := NewWorkLocationService(repo, config.AttendanceConfig{MaxAccuracyMeters: 50})

	name := "Renamed"
	_, err := service.UpdateWorkLocation(context.Background(), worklocation.UpdateWorkLocationRequest{
		ID:   "missing",
		Name: &name,
	})
	assert.ErrorIs(t, err, worklocation.ErrWorkLocationNotFound)
}

func TestDeleteWorkLocation(t *testing.T) {
	location := clinicLocation()
	repo := &fakeWorkLocationRepo{locations: []worklocation.WorkLocation{location}}
	service := NewWorkLocationService(repo, config.AttendanceConfig{MaxAccuracyMeters: 50})

	require.NoError(t, service.DeleteWorkLocation(context.Background(), location.ID))
	assert.ErrorIs(t, service.DeleteWorkLocation(context.Background(), location.ID), worklocation.ErrWorkLocationNotFound)
}
