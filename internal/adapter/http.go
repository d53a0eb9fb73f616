package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/nutrikeeper/go-diet-keeper/internal/config"
	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/internal/utils"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

type httpRemoteStore struct {
	client *utils.HTTPClient
	uuids  *utils.UUIDGenerator

	mu        sync.RWMutex
	token     string
	accountID int64

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from adapterCfg.BaseURL, configures
// the underlying HTTP client with the resolved base URL and request timeout,
// and stores appCfg.AuthToken for the Authorization header of authenticated
// requests.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteStore(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteStore, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	h := &httpRemoteStore{
		client: client,
		uuids:  utils.NewUUIDGenerator(),
		logger: logger,
	}
	h.SetToken(appCfg.AuthToken)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteStore]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent requests, and extracts
// the account id from the token's subject claim when possible.
func (h *httpRemoteStore) SetToken(token string) {
	token = strings.TrimSpace(token)

	var accountID int64
	if token != "" {
		id, err := utils.ParseAccountIDFromJWT(token)
		if err != nil {
			h.logger.Debug().
				Str("func", "httpRemoteStore.SetToken").
				Err(err).
				Msg("token subject is not an account id")
		} else {
			accountID = id
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
	h.accountID = accountID
}

// Token implements [RemoteStore].
func (h *httpRemoteStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// AccountID implements [RemoteStore].
func (h *httpRemoteStore) AccountID() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.accountID
}

// PullAll implements [RemoteStore]. It GETs /api/entities/{collection} and
// returns the raw entity payloads. Returns [ErrNetworkUnavailable] (wrapped)
// when the backend cannot be reached.
func (h *httpRemoteStore) PullAll(ctx context.Context, collection models.Collection) ([]json.RawMessage, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/entities/" + string(collection))
	if err != nil {
		return nil, fmt.Errorf("%w: pull %s: %v", ErrNetworkUnavailable, collection, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode %s pull response: %w", collection, err)
	}

	return items, nil
}

// Create implements [RemoteStore]. It POSTs entity to
// POST /api/entities/{collection} with a fresh idempotency key and returns
// the backend's stored record.
func (h *httpRemoteStore) Create(ctx context.Context, collection models.Collection, entity any) (json.RawMessage, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Idempotency-Key", h.uuids.Generate()).
		SetBody(entity).
		Post("/api/entities/" + string(collection))
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrNetworkUnavailable, collection, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body()), nil
}

// Update implements [RemoteStore]. It PUTs entity to
// PUT /api/entities/{collection}/{id} and returns the backend's stored
// record.
func (h *httpRemoteStore) Update(ctx context.Context, collection models.Collection, id int64, entity any) (json.RawMessage, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entity).
		Put(entityPath(collection, id))
	if err != nil {
		return nil, fmt.Errorf("%w: update %s/%d: %v", ErrNetworkUnavailable, collection, id, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body()), nil
}

// Delete implements [RemoteStore]. It sends DELETE /api/entities/{collection}/{id}.
func (h *httpRemoteStore) Delete(ctx context.Context, collection models.Collection, id int64) error {
	resp, err := h.authedRequest(ctx).
		Delete(entityPath(collection, id))
	if err != nil {
		return fmt.Errorf("%w: delete %s/%d: %v", ErrNetworkUnavailable, collection, id, err)
	}

	return mapHTTPError(resp)
}

// GetCatalog implements [RemoteStore]. It GETs /api/reference-data/foods and
// decodes the full catalog.
func (h *httpRemoteStore) GetCatalog(ctx context.Context) ([]models.FoodItem, error) {
	var items []models.FoodItem

	resp, err := h.authedRequest(ctx).
		SetResult(&items).
		Get("/api/reference-data/foods")
	if err != nil {
		return nil, fmt.Errorf("%w: get catalog: %v", ErrNetworkUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return items, nil
}

// SearchCatalog implements [RemoteStore]. It GETs
// /api/reference-data/foods/search?q={query}&food_group={group} and decodes
// the matches. The food_group parameter is omitted when group is empty.
func (h *httpRemoteStore) SearchCatalog(ctx context.Context, query, group string) ([]models.FoodItem, error) {
	var items []models.FoodItem

	req := h.authedRequest(ctx).
		SetQueryParam("q", query).
		SetResult(&items)
	if group != "" {
		req.SetQueryParam("food_group", group)
	}
	resp, err := req.Get("/api/reference-data/foods/search")
	if err != nil {
		return nil, fmt.Errorf("%w: search catalog: %v", ErrNetworkUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return items, nil
}

// GetProfile implements [RemoteStore]. It GETs /api/profile.
func (h *httpRemoteStore) GetProfile(ctx context.Context) (models.Profile, error) {
	var profile models.Profile

	resp, err := h.authedRequest(ctx).
		SetResult(&profile).
		Get("/api/profile")
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: get profile: %v", ErrNetworkUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

// UpdateProfile implements [RemoteStore]. It PUTs profile to /api/profile and
// returns the stored record.
func (h *httpRemoteStore) UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	var stored models.Profile

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(profile).
		SetResult(&stored).
		Put("/api/profile")
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: update profile: %v", ErrNetworkUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Profile{}, err
	}

	return stored, nil
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func entityPath(collection models.Collection, id int64) string {
	return "/api/entities/" + string(collection) + "/" + strconv.FormatInt(id, 10)
}
