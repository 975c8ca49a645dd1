package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vendora/platform/internal/apperr"
)

const carrierStatusSuccess = "SUCCESS"

// CarrierClient submits customs declarations to a Shippo-style carrier API.
type CarrierClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

func NewCarrierClient(baseURL, token string, httpClient *http.Client, log *slog.Logger) *CarrierClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CarrierClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
		log:        log,
	}
}

type carrierCustomsResponse struct {
	ObjectID     string   `json:"object_id"`
	ObjectStatus string   `json:"object_status"`
	Messages     []string `json:"messages,omitempty"`
}

// SubmitCustomsDeclaration posts the declaration and returns the carrier's
// opaque declaration id. A non-2xx response or a non-SUCCESS object status is
// a failure even when the body parses.
func (c *CarrierClient) SubmitCustomsDeclaration(ctx context.Context, decl *CustomsDeclaration) (string, error) {
	payload, err := json.Marshal(decl)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeShippoCustomsFailed, "marshal customs declaration")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/customs/declarations", bytes.NewReader(payload))
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeShippoCustomsFailed, "build customs request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "ShippoToken "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeShippoCustomsFailed, "customs submission failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeShippoCustomsFailed, "read customs response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("carrier rejected customs declaration", "status", resp.StatusCode, "body", string(body))
		return "", apperr.New(apperr.CodeShippoCustomsFailed, "carrier returned HTTP %d", resp.StatusCode)
	}

	var parsed carrierCustomsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperr.Wrap(err, apperr.CodeShippoCustomsFailed, "decode customs response")
	}
	if parsed.ObjectStatus != carrierStatusSuccess {
		return "", apperr.New(apperr.CodeShippoCustomsObjectError,
			"carrier reported status %q: %s", parsed.ObjectStatus, strings.Join(parsed.Messages, "; "))
	}
	return parsed.ObjectID, nil
}
