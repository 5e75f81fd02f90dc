package ddns

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// mythicBeastsEndpoints maps each family to the dynamic DNS endpoint served over that family.
// The domain name is appended to form the request URL.
var mythicBeastsEndpoints = map[Family]string{
	IPv4: "https://ipv4.api.mythic-beasts.com/dns/v2/dynamic/",
	IPv6: "https://ipv6.api.mythic-beasts.com/dns/v2/dynamic/",
}

const (
	userAgent = "mbddns"
	// replies are a few dozen bytes; anything near this is not a reply we understand
	maxReplySize = 1 << 20
)

func newMythicBeastsProvider(keyID, secret string) *mythicBeastsProvider {
	endpoints := make(map[Family]string, len(mythicBeastsEndpoints))
	for f, u := range mythicBeastsEndpoints {
		endpoints[f] = u
	}
	return &mythicBeastsProvider{
		keyID:      keyID,
		secret:     secret,
		endpoints:  endpoints,
		httpClient: cleanhttp.DefaultClient(),
		timeout:    DefaultTimeout,
		logger:     discard,
	}
}

// mythicBeastsProvider implements ddns.Provider for the Mythic Beasts DNS API v2.
//
// It should be constructed using UsingMythicBeasts.
type mythicBeastsProvider struct {
	keyID, secret string
	endpoints     map[Family]string
	httpClient    *http.Client
	timeout       time.Duration
	logger        *slog.Logger
}

func (mb *mythicBeastsProvider) UpdateAddress(ctx context.Context, domain string, family Family) (*Reply, error) {
	if mb.keyID == "" {
		return nil, &CredentialsError{Family: family, Key: "key_id"}
	}
	if mb.secret == "" {
		return nil, &CredentialsError{Family: family, Key: "secret"}
	}
	endpoint, ok := mb.endpoints[family]
	if !ok {
		return nil, &TransportError{Family: family, Err: fmt.Errorf("no endpoint for address family %q", family)}
	}

	ctx, cancel := context.WithTimeout(ctx, mb.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+domain, nil)
	if err != nil {
		return nil, &TransportError{Family: family, Err: fmt.Errorf("error creating request: %w", err)}
	}
	req.SetBasicAuth(mb.keyID, mb.secret)
	req.Header.Set("User-Agent", userAgent)

	mb.logger.Debug("sending update request", "family", family, "url", req.URL.String())
	resp, err := mb.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Family: family, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, &TransportError{Family: family, Err: fmt.Errorf("error reading response: %w", err)}
	}
	mb.logger.Debug("received update response", "family", family, "status", resp.StatusCode, "bytes", len(body))

	var errs []error
	if resp.StatusCode != http.StatusOK {
		errs = append(errs, &StatusError{Family: family, StatusCode: resp.StatusCode})
	}

	reply, err := decodeReply(body)
	if err != nil {
		errs = append(errs, &DecodeError{Family: family, Err: err})
		return &Reply{StatusCode: resp.StatusCode}, errors.Join(errs...)
	}
	reply.StatusCode = resp.StatusCode
	if reply.Error != nil {
		errs = append(errs, &APIError{Family: family, Message: *reply.Error})
	}
	return reply, errors.Join(errs...)
}

// decodeReply accepts any JSON object.
// Non-string message or error values are kept as their JSON text.
func decodeReply(body []byte) (*Reply, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("response is not a JSON object")
	}
	reply := &Reply{}
	if raw, ok := fields["message"]; ok {
		s := fieldText(raw)
		reply.Message = &s
	}
	if raw, ok := fields["error"]; ok {
		s := fieldText(raw)
		reply.Error = &s
	}
	return reply, nil
}

func fieldText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
