package cache

import (
	"context"

	"github.com/Heemps/Cape-Cod-Tides/internal/models"
)

// MockCacheService is an in-memory stand-in for tests.
type MockCacheService struct {
	records map[string]*models.TidePredictionRecord
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		records: make(map[string]*models.TidePredictionRecord),
	}
}

func (m *MockCacheService) GetPredictions(_ context.Context, stationID int, date string) (*models.TidePredictionRecord, error) {
	return m.records[getCacheKey(stationID, date)], nil
}

func (m *MockCacheService) SavePredictions(_ context.Context, record models.TidePredictionRecord) error {
	m.records[getCacheKey(record.StationID, record.Date)] = &record
	return nil
}
