// Package bootstrap implements the SQLDriverConnect/SQLConnect bootstrapper:
// parse the connection string, stand up the logger, validate the result in
// a fixed order, then acquire a token and build the category index (C7)
// before the connection is usable.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kom2/kom2/internal/connstr"
	"github.com/kom2/kom2/internal/diag"
	"github.com/kom2/kom2/internal/inventory"
	"github.com/kom2/kom2/internal/komlog"
	"github.com/kom2/kom2/internal/korrelation"
)

// Result is everything a successful connect hands back to the DBC handle.
type Result struct {
	Client        *inventory.Client
	Categories    *inventory.CategoryIndex
	Logger        *komlog.Logger
	CorrelationID string
}

// Connect runs the full bootstrap sequence for a connection string.
// Validation order is fixed and observable: the logfile is opened first —
// even if everything after it fails, a "No Server specified" diagnostic
// still lands in the log — then server presence, then credentials, then
// the network round-trip that builds the category index.
//
// On any failure, Connect still returns a non-nil *komlog.Logger so the
// caller can push the failing diagnostic through it before freeing the
// connection. A correlation ID is minted before anything else so that
// every line logged during this call, including the very first failure,
// carries it.
func Connect(ctx context.Context, raw string) (*Result, *komlog.Logger, *diag.Record) {
	correlationID := korrelation.New()

	params, err := connstr.Parse(raw)
	if err != nil {
		logger := komlog.New("", correlationID)
		rec := diag.New("HY000", 0, fmt.Sprintf("Invalid connection string: %v", err))
		logger.LogDiag(rec)
		return nil, logger, rec
	}

	logger := komlog.New(params.LogFile, correlationID)

	if params.Server == "" {
		rec := diag.New("08001", 0, "No Server specified")
		logger.LogDiag(rec)
		return nil, logger, rec
	}

	if !params.HasCredentials() {
		rec := diag.New("08001", 0, "No APIToken or Username+Password specified")
		logger.LogDiag(rec)
		return nil, logger, rec
	}

	client := inventory.NewClient(params.Server, &http.Client{Timeout: params.Timeout()})
	if params.HasToken() {
		client.SetToken(params.APIToken)
	} else if err := client.FetchToken(ctx, params.Username, params.Password); err != nil {
		rec := diag.New("08001", 0, fmt.Sprintf("Error updating category list: %v", err))
		logger.LogDiag(rec)
		return nil, logger, rec
	}

	categories, err := client.FetchCategories(ctx)
	if err != nil {
		rec := diag.New("08001", 0, fmt.Sprintf("Error updating category list: %v", err))
		logger.LogDiag(rec)
		return nil, logger, rec
	}

	return &Result{
		Client:        client,
		Categories:    inventory.BuildCategoryIndex(categories),
		Logger:        logger,
		CorrelationID: correlationID,
	}, logger, nil
}
