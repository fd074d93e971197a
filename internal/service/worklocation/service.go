package worklocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/dokterku/klinik-backend-go/internal/config"
	"github.com/dokterku/klinik-backend-go/internal/domain/worklocation"
	"github.com/dokterku/klinik-backend-go/internal/pkg/geo"
)

type WorkLocationServiceImpl struct {
	repo worklocation.WorkLocationRepository
	cfg  config.AttendanceConfig
}

// Match implements worklocation.WorkLocationService.
//
// Only active locations participate: deactivating a location must take
// effect on the next check-in. The first location whose radius contains
// the point wins, in listing order; overlapping geofences are a
// configuration error, not a runtime concern.
func (s *WorkLocationServiceImpl) Match(ctx context.Context, latitude, longitude, accuracy float64) (worklocation.MatchResult, error) {
	// Accuracy gate comes before any distance math.
	if accuracy > s.cfg.MaxAccuracyMeters {
		return worklocation.MatchResult{}, worklocation.ErrAccuracyTooLow
	}

	locations, err := s.repo.ListActive(ctx)
	if err != nil {
		return worklocation.MatchResult{}, fmt.Errorf("failed to list active work locations: %w", err)
	}

	nearest := -1.0
	for i := range locations {
		loc := locations[i]
		distance := geo.Distance(latitude, longitude, loc.Latitude, loc.Longitude)
		if distance <= float64(loc.RadiusMeters) {
			return worklocation.MatchResult{
				Location:       &loc,
				DistanceMeters: distance,
			}, nil
		}
		if nearest < 0 || distance < nearest {
			nearest = distance
		}
	}

	return worklocation.MatchResult{DistanceMeters: nearest}, worklocation.ErrOutsideRadius
}

// CreateWorkLocation implements worklocation.WorkLocationService.
func (s *WorkLocationServiceImpl) CreateWorkLocation(ctx context.Context, req worklocation.CreateWorkLocationRequest) (worklocation.WorkLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	locationType := worklocation.LocationType(req.Type)
	if req.Type == "" {
		locationType = worklocation.LocationTypeBranch
	}

	created, err := s.repo.Create(ctx, worklocation.WorkLocation{
		Name:         req.Name,
		Type:         locationType,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     true,
	})
	if err != nil {
		return worklocation.WorkLocationResponse{}, fmt.Errorf("failed to create work location: %w", err)
	}

	return mapToResponse(created), nil
}

// GetWorkLocation implements worklocation.WorkLocationService.
func (s *WorkLocationServiceImpl) GetWorkLocation(ctx context.Context, id string) (worklocation.WorkLocationResponse, error) {
	location, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, worklocation.ErrWorkLocationNotFound) {
			return worklocation.WorkLocationResponse{}, worklocation.ErrWorkLocationNotFound
		}
		return worklocation.WorkLocationResponse{}, fmt.Errorf("failed to get work location: %w", err)
	}

	return mapToResponse(location), nil
}

// ListWorkLocations implements worklocation.WorkLocationService.
func (s *WorkLocationServiceImpl) ListWorkLocations(ctx context.Context) ([]worklocation.WorkLocationResponse, error) {
	locations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}

	responses := make([]worklocation.WorkLocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, mapToResponse(loc))
	}

	return responses, nil
}

// UpdateWorkLocation implements worklocation.WorkLocationService.
func (s *WorkLocationServiceImpl) UpdateWorkLocation(ctx context.Context, req worklocation.UpdateWorkLocationRequest) (worklocation.WorkLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	location, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, worklocation.ErrWorkLocationNotFound) {
			return worklocation.WorkLocationResponse{}, worklocation.ErrWorkLocationNotFound
		}
		return worklocation.WorkLocationResponse{}, fmt.Errorf("failed to get work location: %w", err)
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Type != nil {
		location.Type = worklocation.LocationType(*req.Type)
	}
	if req.Latitude != nil {
		location.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		location.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		location.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, location); err != nil {
		return worklocation.WorkLocationResponse{}, fmt.Errorf("failed to update work location: %w", err)
	}

	return mapToResponse(location), nil
}

// DeleteWorkLocation implements worklocation.WorkLocationService.
func (s *WorkLocationServiceImpl) DeleteWorkLocation(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, worklocation.ErrWorkLocationNotFound) {
			return worklocation.ErrWorkLocationNotFound
		}
		return fmt.Errorf("failed to delete work location: %w", err)
	}

	return nil
}

func mapToResponse(loc worklocation.WorkLocation) worklocation.WorkLocationResponse {
	return worklocation.WorkLocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		Type:         string(loc.Type),
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		RadiusMeters: loc.RadiusMeters,
		IsActive:     loc.IsActive,
		CreatedAt:    loc.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    loc.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func NewWorkLocationService(repo worklocation.WorkLocationRepository, cfg config.AttendanceConfig) worklocation.WorkLocationService {
	return &WorkLocationServiceImpl{
		repo: repo,
		cfg:  cfg,
	}
}
