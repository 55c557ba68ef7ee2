package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/tim-encrypted-storage/internal/config"
	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/internal/metrics"
	"github.com/MKhiriev/tim-encrypted-storage/internal/utils"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

const (
	headerRequestID   = "X-Request-Id"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"

	endpointCreateKey = "createkey"
	endpointGetKey    = "key"
)

type httpKeyService struct {
	client  *utils.HTTPClient
	version string

	requestIDs *utils.UUIDGenerator

	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewHTTPKeyService constructs an HTTP/REST implementation of [KeyService].
// It normalises the realm base URL from adapterCfg.Realm and configures the
// underlying HTTP client with it and with the request timeout. m may be nil.
//
// Returns an error if the realm is empty or not a valid URL, or if the API
// version is empty.
func NewHTTPKeyService(adapterCfg config.ClientAdapter, log *logger.Logger, m *metrics.Metrics) (KeyService, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.Realm)
	if err != nil {
		return nil, fmt.Errorf("invalid key service realm: %w", err)
	}
	version := strings.Trim(strings.TrimSpace(adapterCfg.APIVersion), "/")
	if version == "" {
		return nil, ErrEmptyAPIVersion
	}

	h := &httpKeyService{
		client:     utils.NewHTTPClient(),
		version:    version,
		requestIDs: utils.NewUUIDGenerator(),
		logger:     log,
		metrics:    m,
	}

	h.client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader(headerContentType, contentTypeJSON)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyRealm
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidRealm
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// CreateKey implements [KeyService]. It POSTs the secret to
// POST {realm}/keyservice/{version}/createkey.
func (h *httpKeyService) CreateKey(ctx context.Context, secret string) (models.KeyModel, error) {
	return h.post(ctx, "create_key", endpointCreateKey, "", models.CreateKeyRequest{Secret: secret})
}

// GetKeyViaSecret implements [KeyService]. It POSTs keyid and secret to
// POST {realm}/keyservice/{version}/key.
func (h *httpKeyService) GetKeyViaSecret(ctx context.Context, secret, keyID string) (models.KeyModel, error) {
	return h.post(ctx, "get_key_via_secret", endpointGetKey, keyID,
		models.KeyViaSecretRequest{KeyID: keyID, Secret: secret})
}

// GetKeyViaLongSecret implements [KeyService]. It POSTs keyid and longsecret
// to POST {realm}/keyservice/{version}/key.
func (h *httpKeyService) GetKeyViaLongSecret(ctx context.Context, longSecret, keyID string) (models.KeyModel, error) {
	return h.post(ctx, "get_key_via_long_secret", endpointGetKey, keyID,
		models.KeyViaLongSecretRequest{KeyID: keyID, LongSecret: longSecret})
}

func (h *httpKeyService) post(ctx context.Context, op, endpoint, keyID string, body any) (key models.KeyModel, err error) {
	started := time.Now()
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = h.requestIDs.Generate()
	}
	log := h.logger.Operation(op)

	defer func() {
		h.metrics.Observe(metrics.ComponentKeyService, op, started, err)
	}()

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(headerRequestID, requestID).
		SetBody(body).
		Post(h.path(endpoint))
	if err != nil {
		err = mapTransportError(err)
		log.Err(err).Str("request_id", requestID).Str("key_id", keyID).Msg("key service request failed")
		return models.KeyModel{}, err
	}

	log.Debug().
		Str("request_id", requestID).
		Str("key_id", keyID).
		Int("status", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Msg("key service responded")

	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("request_id", requestID).Str("key_id", keyID).Msg("key service rejected request")
		return models.KeyModel{}, err
	}

	key, err = decodeKeyModel(resp.Body())
	if err != nil {
		log.Err(err).Str("request_id", requestID).Str("key_id", keyID).Msg("key service response not decodable")
		return models.KeyModel{}, err
	}

	return key, nil
}

func (h *httpKeyService) path(endpoint string) string {
	return "/keyservice/" + url.PathEscape(h.version) + "/" + endpoint
}

func decodeKeyModel(body []byte) (models.KeyModel, error) {
	var key models.KeyModel
	if err := json.Unmarshal(body, &key); err != nil {
		return models.KeyModel{}, models.NewKeyServiceError(models.UnableToDecode, fmt.Errorf("decode key model: %w", err))
	}
	if key.KeyID == "" || key.Key == "" || key.LongSecret == "" {
		return models.KeyModel{}, models.NewKeyServiceError(models.UnableToDecode, ErrIncompleteKey)
	}
	return key, nil
}
