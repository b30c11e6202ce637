package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// ManagementAPI is the subset of the API Gateway management client the
// publisher uses.
type ManagementAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// DefaultPublisher pushes messages to connected clients through the API
// Gateway management API. Messages with a Recipient reach only that account's
// connections; the rest are broadcast.
type DefaultPublisher struct {
	lister      ConnectionLister
	connManager ConnectionManager
	apiGwClient ManagementAPI
}

// NewPublisher creates a new DefaultPublisher.
func NewPublisher(lister ConnectionLister, connManager ConnectionManager, apiEndpoint string) (*DefaultPublisher, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	apiGwClient := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})

	return &DefaultPublisher{
		lister:      lister,
		connManager: connManager,
		apiGwClient: apiGwClient,
	}, nil
}

// Publish sends a message to the connections the message is addressed to.
func (p *DefaultPublisher) Publish(ctx context.Context, message Message) error {
	connectionIDs, err := p.resolveConnections(ctx, message)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := p.apiGwClient.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})

		if err != nil {
			var goneErr *apigwtypes.GoneException
			if errors.As(err, &goneErr) {
				slog.Info("stale connection found, deleting", "connectionId", connectionID)
				if err := p.connManager.RemoveConnection(ctx, connectionID); err != nil {
					slog.Error("failed to delete stale connection", "error", err)
				}
			} else {
				slog.Error("failed to post to connection", "connectionId", connectionID, "error", err)
			}
		}
	}

	return nil
}

func (p *DefaultPublisher) resolveConnections(ctx context.Context, message Message) ([]string, error) {
	if message.Recipient != "" {
		ids, err := p.lister.GetConnectionsForAccount(ctx, message.Recipient)
		if err != nil {
			return nil, fmt.Errorf("failed to get connections for account %s: %w", message.Recipient, err)
		}
		return ids, nil
	}

	ids, err := p.lister.GetAllConnections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all connections: %w", err)
	}
	return ids, nil
}
