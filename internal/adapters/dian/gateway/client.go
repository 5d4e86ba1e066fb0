// Package gateway habla con el servicio real de radicación DIAN vía HTTP.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"riavet-api/internal/platform/httpclient"
	dianport "riavet-api/internal/ports/dian"
)

type Client struct {
	http   *httpclient.Client
	apiKey string
	log    *zap.Logger
}

func New(baseURL, apiKey string, log *zap.Logger) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("dian gateway: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{http: hc, apiKey: apiKey, log: log}, nil
}

type submitRequest struct {
	InvoiceID  string `json:"invoiceId"`
	XMLPayload string `json:"xmlPayload"`
}

type submitResponse struct {
	Success  bool   `json:"success"`
	DianCode string `json:"dianCode"`
	Message  string `json:"message"`
}

func (c *Client) Submit(ctx context.Context, sub dianport.Submission) (dianport.Result, error) {
	headers := map[string]string{}
	if c.apiKey != "" {
		headers["X-Api-Key"] = c.apiKey
	}

	var resp submitResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/api/v1/invoices", headers, submitRequest{
		InvoiceID:  sub.InvoiceID,
		XMLPayload: sub.XMLPayload,
	}, &resp)
	if err != nil {
		return dianport.Result{}, fmt.Errorf("dian gateway: submit: %w", err)
	}

	c.log.Info("dian gateway response",
		zap.String("invoice_id", sub.InvoiceID),
		zap.Bool("accepted", resp.Success),
		zap.String("dian_code", resp.DianCode),
	)
	return dianport.Result{
		Accepted: resp.Success,
		DianCode: resp.DianCode,
		Message:  resp.Message,
	}, nil
}
