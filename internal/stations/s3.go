package stations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/Heemps/Cape-Cod-Tides/internal/models"
)

// S3Client defines the interface for the S3 operations we need
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// directoryFile is the shape of the station table object in S3.
type directoryFile struct {
	Stations    []models.Station `json:"stations"`
	DefaultCity string           `json:"defaultCity,omitempty"`
}

// NewS3Client builds an S3 client from the default credential chain.
func NewS3Client(ctx context.Context) (S3Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// LoadFromS3 reads the town table from an S3 object, so the directory can be
// edited without a redeploy. The object may name its own default city;
// otherwise fallbackDefault is used.
func LoadFromS3(ctx context.Context, client S3Client, bucket, key, fallbackDefault string) (*Directory, error) {
	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting station table from S3: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if closeErr := Body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Error closing S3 object body")
		}
	}(result.Body)

	var file directoryFile
	if err := json.NewDecoder(result.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding station table: %w", err)
	}

	defaultCity := file.DefaultCity
	if defaultCity == "" {
		defaultCity = fallbackDefault
	}

	dir, err := NewDirectory(file.Stations, defaultCity)
	if err != nil {
		return nil, fmt.Errorf("building directory from S3 table: %w", err)
	}

	log.Debug().Int("station_count", len(file.Stations)).Msg("Loaded station table from S3")
	return dir, nil
}
