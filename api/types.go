// Package api - Request and response types
package api

import (
	"quote-engine/adapters/classification"
	"quote-engine/core/types"
	"quote-engine/internal/errors"
)

// ErrorResponse is the error envelope returned for failed requests
type ErrorResponse struct {
	Status  int    `json:"status"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// HistoryResponse wraps a tax-id history query
type HistoryResponse struct {
	TaxID  string              `json:"tax_id"`
	Count  int                 `json:"count"`
	Quotes []types.QuoteRecord `json:"quotes"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// validateRequest checks the fields the quoting core does not own:
// presence of identifiers and catalog membership of the classification.
func validateRequest(req *types.QuoteRequest, catalog *classification.Catalog) error {
	if req.BusinessName == "" {
		return errors.Input("business_name is required")
	}
	if req.TaxID == "" {
		return errors.Input("tax_id is required")
	}
	if req.State == "" {
		return errors.Input("state is required")
	}
	if req.Product == "" {
		return errors.Input("product is required")
	}
	if req.Classification == "" {
		return errors.Input("classification is required")
	}
	if catalog != nil && !catalog.Valid(req.Product, req.Classification) {
		return errors.Newf(errors.TypeInput,
			"classification %q is not valid for product %q", req.Classification, req.Product)
	}
	return nil
}
