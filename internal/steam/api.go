package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
)

// AppDetailsResponse is the body of /api/appdetails, keyed by app ID.
type AppDetailsResponse map[string]struct {
	Success bool `json:"success"`
	Data    struct {
		Type       string `json:"type"`
		Name       string `json:"name"`
		SteamAppID int64  `json:"steam_appid"`
	} `json:"data"`
}

// APIService looks up app names through the store appdetails endpoint
type APIService struct {
	log      zerolog.Logger
	baseURL  string
	language string
	client   *http.Client
}

func NewAPIService(log zerolog.Logger, cfg *domain.Config) *APIService {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	base := cfg.SteamAPIURL
	if base == "" {
		base = domain.DefaultSteamURL
	}

	return &APIService{
		log:      log.With().Str("module", "steam").Str("source", "api").Logger(),
		baseURL:  strings.TrimRight(base, "/"),
		language: cfg.Language,
		client:   &http.Client{Timeout: timeout},
	}
}

var _ domain.NameLookup = (*APIService)(nil)

// LookupName returns the app name, or domain.ErrNameNotFound when the store
// answers without success.
func (s *APIService) LookupName(ctx context.Context, id string) (string, error) {
	details, err := s.appDetails(ctx, id)
	if err != nil {
		return "", err
	}

	app, ok := details[id]
	if !ok || !app.Success {
		return "", errors.Wrapf(domain.ErrNameNotFound, "appdetails for %s", id)
	}

	name := strings.TrimSpace(app.Data.Name)
	if name == "" {
		return "", errors.Wrapf(domain.ErrNameNotFound, "appdetails for %s has no name", id)
	}

	s.log.Debug().Str("appid", id).Str("name", name).Msg("name found")
	return name, nil
}

func (s *APIService) appDetails(ctx context.Context, id string) (AppDetailsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.buildURL(id), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	details := AppDetailsResponse{}
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal response")
	}

	return details, nil
}

func (s *APIService) buildURL(id string) string {
	query := url.Values{}
	query.Set("appids", id)
	if s.language != "" {
		query.Set("l", s.language)
	}
	return s.baseURL + "/api/appdetails/?" + query.Encode()
}
