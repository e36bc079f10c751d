package openfga

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"adminforms/internal/config"

	"github.com/openfga/go-sdk/client"
	"github.com/openfga/go-sdk/credentials"
)

// Client wraps the OpenFGA SDK client. A disabled client accepts every
// write and allows every check.
type Client struct {
	logger *slog.Logger
	fga    *client.OpenFgaClient
	config config.OpenFGAConfig
}

func NewClient(logger *slog.Logger, cfg config.OpenFGAConfig) (*Client, error) {
	if !cfg.Enabled {
		logger.Info("OpenFGA is disabled")
		return &Client{logger: logger, config: cfg}, nil
	}

	clientCfg := &client.ClientConfiguration{
		ApiUrl:               cfg.APIHost,
		StoreId:              cfg.StoreID,
		AuthorizationModelId: cfg.ModelID,
	}
	if cfg.APIToken != "" {
		clientCfg.Credentials = &credentials.Credentials{
			Method: credentials.CredentialsMethodApiToken,
			Config: &credentials.Config{
				ApiToken: cfg.APIToken,
			},
		}
	}

	fgaClient, err := client.NewSdkClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenFGA client: %w", err)
	}

	logger.Info("OpenFGA client initialized successfully",
		"store_id", cfg.StoreID, "model_id", cfg.ModelID)

	return &Client{logger: logger, fga: fgaClient, config: cfg}, nil
}

func (c *Client) IsEnabled() bool {
	return c.config.Enabled && c.fga != nil
}

// WriteTuples stores tuples outside a transaction, one tuple per request, so
// a tuple the store already holds fails only its own request. When the only
// failures are such tuples, the returned error wraps ErrTupleExists.
func (c *Client) WriteTuples(ctx context.Context, tuples []Tuple) error {
	if !c.IsEnabled() {
		c.logger.DebugContext(ctx, "OpenFGA disabled, skipping tuple write", "tuples", len(tuples))
		return nil
	}
	if len(tuples) == 0 {
		return nil
	}

	writes := make([]client.ClientTupleKey, len(tuples))
	for i, t := range tuples {
		writes[i] = client.ClientTupleKey{
			User:     t.User,
			Relation: t.Relation,
			Object:   t.Object,
		}
	}

	resp, err := c.fga.Write(ctx).
		Body(client.ClientWriteRequest{Writes: writes}).
		Options(client.ClientWriteOptions{
			Transaction: &client.TransactionOptions{
				Disable:             true,
				MaxPerChunk:         1,
				MaxParallelRequests: int32(c.config.MaxParallelWrites),
			},
		}).
		Execute()
	if err != nil {
		c.logger.ErrorContext(ctx, "OpenFGA write failed", "tuples", len(tuples), "error", err)
		return fmt.Errorf("failed to write tuples: %w", err)
	}

	if err := writeOutcome(resp.Writes); err != nil {
		if !errors.Is(err, ErrTupleExists) {
			c.logger.ErrorContext(ctx, "OpenFGA write failed", "tuples", len(tuples), "error", err)
		}
		return err
	}

	c.logger.DebugContext(ctx, "OpenFGA tuples written", "tuples", len(tuples))
	return nil
}

// writeOutcome folds per-tuple write results into one error. Tuples refused
// because they already exist are reported only when nothing else failed.
func writeOutcome(results []client.ClientWriteRequestWriteResponse) error {
	var existing int
	var errs []error
	for _, r := range results {
		if r.Status == client.SUCCESS {
			continue
		}
		if isTupleExists(r.Error) {
			existing++
			continue
		}
		errs = append(errs, fmt.Errorf("failed to write %s %s %s: %w", r.TupleKey.User, r.TupleKey.Relation, r.TupleKey.Object, r.Error))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if existing > 0 {
		return fmt.Errorf("%d tuple(s): %w", existing, ErrTupleExists)
	}
	return nil
}

func isTupleExists(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already exists")
}

func (c *Client) Check(ctx context.Context, t Tuple) (bool, error) {
	if !c.IsEnabled() {
		return true, nil
	}

	data, err := c.fga.Check(ctx).Body(client.ClientCheckRequest{
		User:     t.User,
		Relation: t.Relation,
		Object:   t.Object,
	}).Execute()
	if err != nil {
		return false, fmt.Errorf("failed to check %s %s %s: %w", t.User, t.Relation, t.Object, err)
	}

	return data.GetAllowed(), nil
}

// WriteModel uploads the module assignment model and returns its id.
func (c *Client) WriteModel(ctx context.Context) (string, error) {
	if !c.IsEnabled() {
		return "", fmt.Errorf("OpenFGA is disabled")
	}

	var body client.ClientWriteAuthorizationModelRequest
	if err := json.Unmarshal([]byte(AuthorizationModel), &body); err != nil {
		return "", fmt.Errorf("failed to parse authorization model: %w", err)
	}

	resp, err := c.fga.WriteAuthorizationModel(ctx).Body(body).Execute()
	if err != nil {
		return "", fmt.Errorf("failed to write authorization model: %w", err)
	}

	return resp.GetAuthorizationModelId(), nil
}
