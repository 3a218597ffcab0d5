package tide

import (
	"context"

	"github.com/Heemps/Cape-Cod-Tides/internal/models"
)

// Fetcher is the outbound boundary: one call, one remote request.
type Fetcher interface {
	Predictions(ctx context.Context, stationID int, dateQuery string) ([]models.TidePrediction, error)
}

// CacheProvider stores fetched prediction series keyed by station and date.
type CacheProvider interface {
	GetPredictions(ctx context.Context, stationID int, date string) (*models.TidePredictionRecord, error)
	SavePredictions(ctx context.Context, record models.TidePredictionRecord) error
}
