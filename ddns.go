package ddns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds each update request unless UsingTimeout says otherwise.
const DefaultTimeout = 30 * time.Second

var discard = slog.New(slog.DiscardHandler)

// New returns a client that updates domain through the configured provider.
//
// Options are applied in order; UsingMythicBeasts (or UsingProvider) must be one of them.
// Both families are enabled unless UsingFamilies narrows them.
func New(domain string, options ...Option) (*Client, error) {
	if domain == "" {
		return nil, fmt.Errorf("ddns.New: domain cannot be empty")
	}
	if !ValidHostname(domain) {
		return nil, fmt.Errorf("ddns.New: %w", &ValidationError{Field: "domain", Value: domain, Reason: "is not a valid hostname"})
	}
	c := &Client{
		domain:   domain,
		families: Families,
		logger:   discard,
	}
	for i, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("ddns.New: option %d returned an error: %w", i, err)
		}
	}

	if c.Provider == nil {
		return nil, fmt.Errorf("ddns.New: no DNS provider was registered - use ddns.UsingMythicBeasts or ddns.UsingProvider")
	}

	// propagate the logger to a provider registered after WithLogger was applied
	withLogger(c.logger)(c)
	return c, nil
}

type Option func(*Client) error

// UsingMythicBeasts registers the Mythic Beasts DNS API as the provider,
// authenticating with an API key ID and secret.
//
// Empty credentials are accepted here and reported per family when an update is attempted.
func UsingMythicBeasts(keyID, secret string) Option {
	return func(c *Client) error {
		c.Provider = newMythicBeastsProvider(keyID, secret)
		return nil
	}
}

func UsingProvider(p Provider) Option {
	return func(c *Client) error {
		if p == nil {
			return errors.New("provider cannot be nil")
		}
		c.Provider = p
		return nil
	}
}

// UsingFamilies restricts the update to the given families.
// They are always attempted in the order of Families regardless of argument order.
func UsingFamilies(families ...Family) Option {
	return func(c *Client) error {
		enabled := make(map[Family]bool, len(families))
		for _, f := range families {
			if f != IPv4 && f != IPv6 {
				return fmt.Errorf("unknown address family %q", f)
			}
			enabled[f] = true
		}
		c.families = nil
		for _, f := range Families {
			if enabled[f] {
				c.families = append(c.families, f)
			}
		}
		return nil
	}
}

// UsingEndpoint replaces the base URL used for family.
// The domain is appended to baseURL as-is, so it normally ends in a slash.
// It must come after the provider option.
func UsingEndpoint(family Family, baseURL string) Option {
	return func(c *Client) error {
		mb, ok := c.Provider.(*mythicBeastsProvider)
		if !ok {
			return errors.New("UsingEndpoint requires the Mythic Beasts provider to be registered first")
		}
		if _, ok := mb.endpoints[family]; !ok {
			return fmt.Errorf("unknown address family %q", family)
		}
		mb.endpoints[family] = baseURL
		return nil
	}
}

// UsingTimeout bounds each update request. Zero or negative restores DefaultTimeout.
// It must come after the provider option.
func UsingTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			d = DefaultTimeout
		}
		type setTimeout interface {
			SetTimeout(time.Duration)
		}
		switch p := c.Provider.(type) {
		case *mythicBeastsProvider:
			p.timeout = d
		case setTimeout:
			p.SetTimeout(d)
		}
		return nil
	}
}

// UsingHTTPClient replaces the provider's HTTP client.
// It must come after the provider option.
func UsingHTTPClient(httpclient *http.Client) Option {
	return func(c *Client) error {
		if httpclient == nil {
			httpclient = http.DefaultClient
		}
		type setHTTPClient interface {
			SetHTTPClient(*http.Client)
		}
		switch p := c.Provider.(type) {
		case *mythicBeastsProvider:
			p.httpClient = httpclient
		case setHTTPClient:
			p.SetHTTPClient(httpclient)
		}
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

func withLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = discard
		}
		c.logger = logger
		type setLogger interface {
			SetLogger(*slog.Logger)
		}
		switch p := c.Provider.(type) {
		case *mythicBeastsProvider:
			p.logger = logger
		case setLogger:
			p.SetLogger(logger)
		}
		return nil
	}
}

// Client runs one update pass over the enabled address families.
type Client struct {
	Provider
	logger   *slog.Logger
	domain   string
	families []Family
}

// Outcome is what happened to one attempted address family.
// StatusCode is zero when no response was received.
// Err is nil only when the family updated cleanly.
type Outcome struct {
	Family     Family
	StatusCode int
	Reply      *Reply
	Err        error
}

func (o Outcome) Failed() bool { return o.Err != nil }

// Result holds one Outcome per attempted family, in attempt order.
type Result []Outcome

func (r Result) Failed() bool {
	for _, o := range r {
		if o.Failed() {
			return true
		}
	}
	return false
}

// Err returns nil if every attempted family updated cleanly.
// Otherwise the error wraps ErrUpdateFailed and every per-family error.
func (r Result) Err() error {
	var errs []error
	for _, o := range r {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUpdateFailed, errors.Join(errs...))
}

// Run attempts exactly one update per enabled family.
// A failure in one family does not stop the next one from being attempted.
func (c *Client) Run(ctx context.Context) Result {
	result := make(Result, 0, len(c.families))
	for _, f := range c.families {
		c.logger.Debug("updating address", "family", f, "domain", c.domain)
		reply, err := c.UpdateAddress(ctx, c.domain, f)
		o := Outcome{Family: f, Reply: reply, Err: err}
		if reply != nil {
			o.StatusCode = reply.StatusCode
		}
		if err != nil {
			c.logger.Debug("update failed", "family", f, "error", err)
		} else {
			c.logger.Debug("update succeeded", "family", f, "status", o.StatusCode)
		}
		result = append(result, o)
	}
	return result
}
