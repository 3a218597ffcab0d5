package tide

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Heemps/Cape-Cod-Tides/internal/models"
	"github.com/Heemps/Cape-Cod-Tides/pkg/http/client"
)

const datagetterPath = "/api/prod/datagetter"

// fixedQuery selects the prediction product the skill speaks about: the
// 6-minute predicted water level series against the MLLW datum, in feet,
// in the station's local time.
const fixedQuery = "product=predictions&datum=MLLW&units=english&time_zone=lst_ldt&format=json"

// Service fetches tide prediction series from NOAA. It issues exactly one
// outbound request per call and never retries; every failure mode reads the
// same to the caller.
type Service struct {
	HTTPClient client.Interface
	Cache      CacheProvider // optional
}

func NewService(httpClient client.Interface, predictionCache CacheProvider) *Service {
	return &Service{
		HTTPClient: httpClient,
		Cache:      predictionCache,
	}
}

// Predictions returns the chronological water-level series for one station
// and one 24-hour window. dateQuery is either "date=today" or
// "begin_date=YYYYMMDD&range=24" as produced by the date resolver.
func (s *Service) Predictions(ctx context.Context, stationID int, dateQuery string) ([]models.TidePrediction, error) {
	cacheDate := cacheDateFor(dateQuery)

	if s.Cache != nil {
		record, err := s.Cache.GetPredictions(ctx, stationID, cacheDate)
		if err != nil {
			log.Warn().Err(err).Int("station_id", stationID).Msg("Prediction cache read failed")
		} else if record != nil {
			log.Debug().Int("station_id", stationID).Str("date", cacheDate).Msg("Cache HIT for predictions")
			return record.Predictions, nil
		}
	}

	resp, err := s.HTTPClient.Get(ctx, fmt.Sprintf("%s?%s&station=%d&%s",
		datagetterPath, dateQuery, stationID, fixedQuery))
	if err != nil {
		return nil, fmt.Errorf("fetching predictions: %w", err)
	}

	if resp.StatusCode != 200 {
		return nil, NewNoaaAPIError(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var noaaResp models.NoaaResponse
	if err := json.Unmarshal(resp.Body, &noaaResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if noaaResp.Error != nil {
		return nil, NewNoaaAPIError(noaaResp.Error.Message, nil)
	}

	log.Debug().
		Int("station_id", stationID).
		Str("date_query", dateQuery).
		Int("sample_count", len(noaaResp.Predictions)).
		Msg("Fetched predictions from NOAA")

	predictions := make([]models.TidePrediction, len(noaaResp.Predictions))
	for i, p := range noaaResp.Predictions {
		// NOAA reports station-local wall time; keep it as-is since the
		// skill only formats it, never compares it to another clock.
		sampleTime, err := time.Parse("2006-01-02 15:04", p.Time)
		if err != nil {
			return nil, fmt.Errorf("parsing time %s: %w", p.Time, err)
		}

		height, err := strconv.ParseFloat(p.Height, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing height %s: %w", p.Height, err)
		}

		predictions[i] = models.TidePrediction{
			Time:   sampleTime,
			Height: height,
		}
	}

	if s.Cache != nil {
		record := models.TidePredictionRecord{
			StationID:   stationID,
			Date:        cacheDate,
			Predictions: predictions,
		}
		if err := s.Cache.SavePredictions(ctx, record); err != nil {
			log.Warn().Err(err).Int("station_id", stationID).Msg("Prediction cache write failed")
		}
	}

	return predictions, nil
}

// cacheDateFor maps a date query to the calendar date it covers, so the
// "today" marker never aliases yesterday's cached series.
func cacheDateFor(dateQuery string) string {
	for _, param := range strings.Split(dateQuery, "&") {
		if raw, ok := strings.CutPrefix(param, "begin_date="); ok {
			if day, err := time.Parse("20060102", raw); err == nil {
				return day.Format("2006-01-02")
			}
		}
	}
	return time.Now().Format("2006-01-02")
}
