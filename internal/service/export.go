package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/voyage/backend/internal/domain"
	"github.com/pkordes/voyage/backend/internal/repo"
)

// ExportService flattens a trip's itinerary for download.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per itinerary day of a trip owned by userID.
// Returns domain.ErrNotFound if the trip does not exist for that user.
func (s *ExportService) Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return domain.ExportRows(trip), nil
}
