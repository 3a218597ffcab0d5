package cache

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"github.com/Heemps/Cape-Cod-Tides/internal/config"
	"github.com/Heemps/Cape-Cod-Tides/internal/models"
)

// DynamoDBClient defines the DynamoDB operations we need
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoPredictionCache handles caching tide predictions in DynamoDB
type DynamoPredictionCache struct {
	client    DynamoDBClient
	tableName string
	ttl       time.Duration
}

func NewDynamoPredictionCache(client DynamoDBClient, cacheConfig *config.CacheConfig) *DynamoPredictionCache {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}
	return &DynamoPredictionCache{
		client:    client,
		tableName: cacheConfig.DynamoTableName,
		ttl:       cacheConfig.GetDynamoTTL(),
	}
}

// GetPredictions retrieves cached predictions for a station and date
func (c *DynamoPredictionCache) GetPredictions(ctx context.Context, stationID int, date string) (*models.TidePredictionRecord, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"stationId": &types.AttributeValueMemberN{Value: strconv.Itoa(stationID)},
			"date":      &types.AttributeValueMemberS{Value: date},
		},
	}

	result, err := c.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("getting predictions from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var record models.TidePredictionRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling prediction record: %w", err)
	}

	if !c.isValid(record) {
		log.Debug().
			Int("station_id", stationID).
			Str("date", date).
			Msg("Cache expired")
		return nil, nil
	}

	return &record, nil
}

// SavePredictions saves predictions to the cache
func (c *DynamoPredictionCache) SavePredictions(ctx context.Context, record models.TidePredictionRecord) error {
	now := time.Now().Unix()
	record.LastUpdated = now
	record.TTL = now + int64(c.ttl.Seconds())

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshaling prediction record: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	}

	if _, err := c.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("putting predictions in DynamoDB: %w", err)
	}

	log.Debug().
		Int("station_id", record.StationID).
		Str("date", record.Date).
		Msg("Saved predictions to cache")

	return nil
}

func (c *DynamoPredictionCache) isValid(record models.TidePredictionRecord) bool {
	return time.Now().Unix() < record.TTL
}

// NewDynamoClient creates a new DynamoDB client based on environment
func NewDynamoClient(ctx context.Context) (*dynamodb.Client, error) {
	if endpoint := os.Getenv("DYNAMODB_ENDPOINT"); endpoint != "" {
		// Local development configuration
		log.Debug().Str("endpoint", endpoint).Msg("Using local DynamoDB endpoint")
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion("local"))
		if err != nil {
			return nil, err
		}

		client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})

		return client, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(cfg), nil
}
