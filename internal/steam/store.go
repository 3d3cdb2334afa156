package steam

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly"
	"github.com/gocolly/colly/extensions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
)

// ageGateCookies skip the store's birthday prompt for mature titles.
const ageGateCookies = "birthtime=0; lastagecheckage=1-0-1900; mature_content=1"

// StoreService reads app names from store pages. It is slower than the API
// and only used as a fallback.
type StoreService struct {
	log     zerolog.Logger
	baseURL *url.URL
	timeout time.Duration
}

func NewStoreService(log zerolog.Logger, cfg *domain.Config) (*StoreService, error) {
	base := cfg.SteamStoreURL
	if base == "" {
		base = domain.DefaultSteamURL
	}
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid store url %q", base)
	}
	if u.Host == "" {
		return nil, errors.Errorf("invalid store url %q", base)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &StoreService{
		log:     log.With().Str("module", "steam").Str("source", "store").Logger(),
		baseURL: u,
		timeout: timeout,
	}, nil
}

var _ domain.NameLookup = (*StoreService)(nil)

func (s *StoreService) LookupName(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cc := colly.NewCollector(
		colly.AllowedDomains(s.baseURL.Host, s.baseURL.Hostname()),
		colly.AllowURLRevisit(),
	)
	cc.SetRequestTimeout(s.timeout)
	extensions.RandomUserAgent(cc)

	cc.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Cookie", ageGateCookies)
		s.log.Debug().Str("url", r.URL.String()).Msg("visiting")
	})

	var name string
	cc.OnHTML("#appHubAppName, .apphub_AppName", func(e *colly.HTMLElement) {
		if name == "" {
			name = strings.TrimSpace(e.Text)
		}
	})

	target := fmt.Sprintf("%s/app/%s/", s.baseURL.String(), url.PathEscape(id))
	if err := cc.Visit(target); err != nil {
		return "", errors.Wrapf(err, "failed to visit %s", target)
	}

	if name == "" {
		return "", errors.Wrapf(domain.ErrNameNotFound, "store page for %s", id)
	}

	s.log.Debug().Str("appid", id).Str("name", name).Msg("name found")
	return name, nil
}
