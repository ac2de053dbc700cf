// Package recap imports free PACER documents from the RECAP archive into
// the opinion corpus.
package recap

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/elisa-a-v/courtlistener/internal/config"
	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// Extractor calls the document text extraction microservice. Transient
// network and server errors are retried with backoff before the document is
// given up on.
type Extractor struct {
	client *resty.Client
}

// NewExtractor creates an Extractor from config.
func NewExtractor(cfg *config.ExtractorConfig) *Extractor {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(5 * time.Second).
		SetRetryMaxWaitTime(40 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &Extractor{client: client}
}

type extractRequest struct {
	FilepathLocal string `json:"filepath_local"`
	StripMargin   bool   `json:"strip_margin"`
}

type extractResponse struct {
	Content string `json:"content"`
	Err     string `json:"err,omitempty"`
}

// ExtractText fetches the extracted plain text for a RECAP document.
func (e *Extractor) ExtractText(ctx context.Context, doc *domain.RECAPDocument) (string, error) {
	var result extractResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(extractRequest{
			FilepathLocal: doc.FilepathLocal,
			StripMargin:   true,
		}).
		SetResult(&result).
		Post("/extract/recap/text/")
	if err != nil {
		return "", fmt.Errorf("extraction request for rd %d failed: %w", doc.ID, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("extraction for rd %d returned status %d", doc.ID, resp.StatusCode())
	}
	if result.Err != "" {
		return "", fmt.Errorf("extraction for rd %d failed: %s", doc.ID, result.Err)
	}
	return result.Content, nil
}
