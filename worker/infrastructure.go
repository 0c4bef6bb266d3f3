package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kishi-backend/dal"
	"kishi-backend/infrastructure"
	"kishi-backend/models"
	"kishi-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// InfrastructureSetup provisions and verifies the DynamoDB tables
type InfrastructureSetup struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewInfrastructureSetup creates the table provisioning handler
func NewInfrastructureSetup(cfg *models.Config, log logger.Logger) (*InfrastructureSetup, error) {
	db, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	return &InfrastructureSetup{
		db:     db,
		config: cfg,
		logger: log,
	}, nil
}

// EnsureTables creates every configured table that does not exist yet and
// waits until it reports ACTIVE. Existing tables are left untouched.
func (is *InfrastructureSetup) EnsureTables(ctx context.Context) error {
	for _, base := range is.config.Tables {
		tableName := is.config.DynamoDBTablePrefix + "_" + base

		exists, err := is.tableExists(ctx, tableName)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", tableName, err)
		}
		if exists {
			is.logger.Debugf("Table %s already exists", tableName)
			continue
		}

		input, err := infrastructure.GetTables(tableName)
		if err != nil {
			return fmt.Errorf("failed to resolve schema for %s: %w", tableName, err)
		}

		is.logger.Infof("Creating table %s", tableName)
		if err := is.db.CreateTable(ctx, input); err != nil {
			// Another instance may have won the race; ResourceInUse means done
			if isTableAlreadyExistsError(err) {
				is.logger.Infof("Table %s already being created elsewhere", tableName)
				continue
			}
			return fmt.Errorf("failed to create table %s: %w", tableName, err)
		}

		if err := is.waitForTableActive(ctx, tableName); err != nil {
			return err
		}
		is.logger.Infof("Table %s created successfully", tableName)
	}

	return nil
}

// waitForTableActive polls DescribeTable until the table reports ACTIVE
func (is *InfrastructureSetup) waitForTableActive(ctx context.Context, tableName string) error {
	const pollInterval = 2 * time.Second

	for {
		output, err := is.db.DescribeTable(ctx, tableName)
		if err == nil && output.Table != nil && output.Table.TableStatus == types.TableStatusActive {
			return nil
		}

		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for table %s to become active: %w", tableName, ctx.Err())
		}
	}
}

// tableExists checks if a table already exists
func (is *InfrastructureSetup) tableExists(ctx context.Context, tableName string) (bool, error) {
	_, err := is.db.DescribeTable(ctx, tableName)
	if err != nil {
		if isTableNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// isTableNotFoundError checks if error indicates table not found
func isTableNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceNotFoundException"
	}

	// Fallback to string matching for other error types
	errorStr := err.Error()
	return strings.Contains(errorStr, "ResourceNotFoundException") ||
		strings.Contains(errorStr, "Requested resource not found")
}

// isTableAlreadyExistsError checks for a create racing another instance
func isTableAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceInUseException"
	}
	return strings.Contains(err.Error(), "ResourceInUseException")
}
