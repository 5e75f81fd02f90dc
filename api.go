package ddns

import (
	"context"
)

// Family is an address family whose DNS record can be updated independently.
type Family string

const (
	IPv4 Family = "ipv4"
	IPv6 Family = "ipv6"
)

var Families = []Family{IPv4, IPv6}

// Provider updates the record of one address family for domain.
// A non-nil Reply may be returned together with a non-nil error when the provider
// answered with a failure that still carried a decodable payload.
type Provider interface {
	UpdateAddress(ctx context.Context, domain string, family Family) (*Reply, error)
}

// Reply is the decoded body of an update response.
// Message and Error are nil when the field was absent from the payload.
type Reply struct {
	StatusCode int
	Message    *string
	Error      *string
}
