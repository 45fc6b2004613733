package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Rakhulsr/go-furniture/app/configs"
	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

var (
	// ErrConflict is returned when a create targets an id that already exists.
	ErrConflict = errors.New("cms: document already exists")
	// ErrMissingToken is returned by writes when no API token is configured.
	ErrMissingToken = errors.New("cms: write operations need SANITY_API_TOKEN")
)

// APIError is any other non-2xx answer from the document API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cms: API returned status %d: %s", e.StatusCode, e.Body)
}

type CMSClient interface {
	Query(ctx context.Context, query string, params map[string]any, out any) error
	Create(ctx context.Context, doc models.Document) (string, error)
	CreateIfNotExists(ctx context.Context, doc models.Document) (string, error)
	CreateOrReplace(ctx context.Context, doc models.Document) (string, error)
	Patch(ctx context.Context, id string, set map[string]any) error
}

type cmsClient struct {
	http       *resty.Client
	dataset    string
	apiVersion string
	hasToken   bool
}

func NewCMSClient(cfg configs.CMSConfig) CMSClient {
	baseURL := cfg.APIHost
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(20*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "go-furniture/1.0")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &cmsClient{
		http:       client,
		dataset:    cfg.Dataset,
		apiVersion: strings.TrimPrefix(cfg.APIVersion, "v"),
		hasToken:   cfg.Token != "",
	}
}

func (c *cmsClient) endpoint(kind string) string {
	return fmt.Sprintf("/v%s/data/%s/%s", c.apiVersion, kind, c.dataset)
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// Query runs a GROQ query and decodes its result into out. Params are
// passed as $name query parameters, JSON encoded.
func (c *cmsClient) Query(ctx context.Context, query string, params map[string]any, out any) error {
	req := c.http.R().SetContext(ctx).SetQueryParam("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("cms: encode query param %s: %w", name, err)
		}
		req.SetQueryParam("$"+name, string(encoded))
	}

	resp, err := req.Get(c.endpoint("query"))
	if err != nil {
		return fmt.Errorf("cms: query request: %w", err)
	}
	if err := statusError(resp); err != nil {
		return err
	}

	var envelope queryResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("cms: decode query response: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("cms: decode query result: %w", err)
	}
	return nil
}

type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
	} `json:"results"`
}

func (c *cmsClient) mutate(ctx context.Context, mutations ...map[string]any) (*mutateResponse, error) {
	if !c.hasToken {
		return nil, ErrMissingToken
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("returnIds", "true").
		SetBody(map[string]any{"mutations": mutations}).
		Post(c.endpoint("mutate"))
	if err != nil {
		return nil, fmt.Errorf("cms: mutate request: %w", err)
	}
	if err := statusError(resp); err != nil {
		return nil, err
	}

	var out mutateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("cms: decode mutate response: %w", err)
	}
	return &out, nil
}

func (c *cmsClient) Create(ctx context.Context, doc models.Document) (string, error) {
	return c.createWith(ctx, "create", doc)
}

func (c *cmsClient) CreateIfNotExists(ctx context.Context, doc models.Document) (string, error) {
	return c.createWith(ctx, "createIfNotExists", doc)
}

func (c *cmsClient) CreateOrReplace(ctx context.Context, doc models.Document) (string, error) {
	return c.createWith(ctx, "createOrReplace", doc)
}

func (c *cmsClient) createWith(ctx context.Context, operation string, doc models.Document) (string, error) {
	body, err := documentBody(doc)
	if err != nil {
		return "", err
	}
	if _, err := c.mutate(ctx, map[string]any{operation: body}); err != nil {
		return "", fmt.Errorf("%s %s: %w", operation, body["_id"], err)
	}
	return body["_id"].(string), nil
}

// Patch sets the given fields on an existing document.
func (c *cmsClient) Patch(ctx context.Context, id string, set map[string]any) error {
	if id == "" {
		return errors.New("cms: patch needs a document id")
	}
	if _, err := c.mutate(ctx, map[string]any{"patch": map[string]any{"id": id, "set": set}}); err != nil {
		return fmt.Errorf("patch %s: %w", id, err)
	}
	return nil
}

// documentBody encodes doc with its _type set and an _id generated when
// missing. _rev is dropped; the store assigns revisions.
func documentBody(doc models.Document) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("cms: encode %s: %w", doc.DocumentType(), err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("cms: encode %s: %w", doc.DocumentType(), err)
	}

	body["_type"] = doc.DocumentType()
	if id, _ := body["_id"].(string); id == "" {
		body["_id"] = uuid.NewString()
	}
	delete(body, "_rev")
	return body, nil
}

func statusError(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, resp.String())
	case resp.IsError():
		return &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
