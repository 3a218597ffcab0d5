package main

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/Heemps/Cape-Cod-Tides/internal/alexa"
	"github.com/Heemps/Cape-Cod-Tides/internal/cache"
	appconfig "github.com/Heemps/Cape-Cod-Tides/internal/config"
	"github.com/Heemps/Cape-Cod-Tides/internal/skill"
	"github.com/Heemps/Cape-Cod-Tides/internal/stations"
	"github.com/Heemps/Cape-Cod-Tides/internal/tide"
	"github.com/Heemps/Cape-Cod-Tides/pkg/http/client"
)

var (
	orchestrator *skill.Orchestrator
	setupOnce    sync.Once
)

func init() {
	setupOnce.Do(func() {
		ctx := context.Background()

		cfg := appconfig.LoadFromEnv()
		cfg.InitializeLogging()

		directory := loadDirectory(ctx, cfg)

		httpClient := client.New(client.Options{
			BaseURL: cfg.NOAABaseURL,
			Timeout: cfg.HTTPTimeout,
		})

		var predictionCache tide.CacheProvider
		if service, err := cache.NewCacheService(ctx, appconfig.GetCacheConfig()); err != nil {
			// A dead cache should never keep the skill from answering.
			log.Warn().Err(err).Msg("Prediction cache unavailable, continuing without it")
		} else {
			predictionCache = service
		}

		tideService := tide.NewService(httpClient, predictionCache)
		orchestrator = skill.New(directory, tideService)
	})
}

// loadDirectory prefers the S3-hosted town table when one is configured,
// falling back to the compiled-in table.
func loadDirectory(ctx context.Context, cfg *appconfig.Config) *stations.Directory {
	if cfg.StationsS3Bucket != "" {
		s3Client, err := stations.NewS3Client(ctx)
		if err == nil {
			directory, loadErr := stations.LoadFromS3(ctx, s3Client,
				cfg.StationsS3Bucket, cfg.StationsS3Key, cfg.DefaultCity)
			if loadErr == nil {
				return directory
			}
			err = loadErr
		}
		log.Warn().Err(err).
			Str("bucket", cfg.StationsS3Bucket).
			Str("key", cfg.StationsS3Key).
			Msg("Falling back to compiled-in station table")
	}

	directory, err := stations.DefaultDirectory(cfg.DefaultCity)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid station directory configuration")
	}
	return directory
}

func handleRequest(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	return orchestrator.HandleRequest(ctx, env)
}

func main() {
	lambda.Start(handleRequest)
}
