package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"orgregistry/internal/participant/models"
	"orgregistry/pkg/domain"
	"orgregistry/pkg/platform/sentinel"
)

const defaultTimeout = 10 * time.Second

// HTTPClient implements Client against the catalog's REST API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	tracer  trace.Tracer
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient overrides the underlying *http.Client (tests, custom
// transports).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) {
		if c != nil {
			h.client = c
		}
	}
}

// NewHTTP constructs a catalog client for the given base URL.
func NewHTTP(baseURL string, opts ...HTTPOption) *HTTPClient {
	h := &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		tracer:  otel.Tracer("orgregistry/internal/catalog"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// selfDescription is the catalog's document envelope. The credential
// subject sits inside a verifiable credential; everything else in the
// envelope is catalog bookkeeping this service does not interpret.
type selfDescription struct {
	ID                   string `json:"id"`
	VerifiableCredential struct {
		CredentialSubject *models.CredentialSubject `json:"credentialSubject"`
	} `json:"verifiableCredential"`
}

type queryResponse struct {
	TotalCount int `json:"totalCount"`
	Items      []struct {
		URI string `json:"uri"`
	} `json:"items"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (h *HTTPClient) FetchByID(ctx context.Context, prefixedID string) (*models.CredentialSubject, error) {
	ctx, span := h.tracer.Start(ctx, "catalog.FetchByID",
		trace.WithAttributes(attribute.String("catalog.subject_id", prefixedID)))
	defer span.End()

	var envelope selfDescription
	err := h.do(ctx, http.MethodGet, "/self-descriptions/"+url.PathEscape(prefixedID), nil, &envelope)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if envelope.VerifiableCredential.CredentialSubject == nil {
		return nil, &Error{Status: http.StatusBadGateway, Message: "self-description carries no credential subject"}
	}
	return envelope.VerifiableCredential.CredentialSubject, nil
}

func (h *HTTPClient) QueryPage(ctx context.Context, offset, limit int) (Page, error) {
	return h.QueryPageExcluding(ctx, nil, offset, limit)
}

func (h *HTTPClient) QueryPageExcluding(ctx context.Context, excluded []domain.OrganizationID, offset, limit int) (Page, error) {
	ctx, span := h.tracer.Start(ctx, "catalog.QueryPage",
		trace.WithAttributes(
			attribute.Int("catalog.offset", offset),
			attribute.Int("catalog.limit", limit),
			attribute.Int("catalog.excluded", len(excluded)),
		))
	defer span.End()

	params := url.Values{}
	params.Set("type", models.CredentialType)
	params.Set("sort", "orgName")
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))
	for _, id := range excluded {
		params.Add("excludeId", id.Prefixed())
	}

	var resp queryResponse
	if err := h.do(ctx, http.MethodGet, "/self-descriptions?"+params.Encode(), nil, &resp); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Page{}, err
	}
	page := Page{TotalCount: resp.TotalCount, URIs: make([]string, 0, len(resp.Items))}
	for _, item := range resp.Items {
		page.URIs = append(page.URIs, item.URI)
	}
	return page, nil
}

func (h *HTTPClient) FetchManyByURIs(ctx context.Context, uris []string) ([]*models.CredentialSubject, error) {
	ctx, span := h.tracer.Start(ctx, "catalog.FetchManyByURIs",
		trace.WithAttributes(attribute.Int("catalog.uris", len(uris))))
	defer span.End()

	params := url.Values{}
	for _, uri := range uris {
		params.Add("uri", uri)
	}

	var resp struct {
		Items []selfDescription `json:"items"`
	}
	if err := h.do(ctx, http.MethodGet, "/self-descriptions/resolve?"+params.Encode(), nil, &resp); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	subjects := make([]*models.CredentialSubject, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.VerifiableCredential.CredentialSubject != nil {
			subjects = append(subjects, item.VerifiableCredential.CredentialSubject)
		}
	}
	return subjects, nil
}

func (h *HTTPClient) Create(ctx context.Context, cs *models.CredentialSubject) (*models.CredentialSubject, error) {
	ctx, span := h.tracer.Start(ctx, "catalog.Create")
	defer span.End()
	return h.submit(ctx, span, http.MethodPost, "/self-descriptions", cs)
}

func (h *HTTPClient) Update(ctx context.Context, cs *models.CredentialSubject) (*models.CredentialSubject, error) {
	ctx, span := h.tracer.Start(ctx, "catalog.Update")
	defer span.End()
	return h.submit(ctx, span, http.MethodPut, "/self-descriptions/"+url.PathEscape(cs.ID), cs)
}

func (h *HTTPClient) submit(ctx context.Context, span trace.Span, method, path string, cs *models.CredentialSubject) (*models.CredentialSubject, error) {
	var envelope selfDescription
	envelope.ID = cs.ID
	envelope.VerifiableCredential.CredentialSubject = cs

	var result selfDescription
	if err := h.do(ctx, method, path, &envelope, &result); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if result.VerifiableCredential.CredentialSubject == nil {
		// Some catalog versions answer writes with an empty body.
		return cs, nil
	}
	return result.VerifiableCredential.CredentialSubject, nil
}

func (h *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal catalog request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return &Error{Status: http.StatusBadGateway, cause: fmt.Errorf("catalog unreachable: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		catErr := &Error{Status: resp.StatusCode}
		var upstream errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&upstream); err == nil {
			catErr.Message = upstream.Message
		}
		switch resp.StatusCode {
		case http.StatusNotFound:
			catErr.cause = sentinel.ErrNotFound
		case http.StatusConflict:
			catErr.cause = sentinel.ErrConflict
		}
		return catErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Status: resp.StatusCode, cause: fmt.Errorf("decode catalog response: %w", err)}
		}
	}
	return nil
}
