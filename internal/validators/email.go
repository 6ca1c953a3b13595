package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"time"
)

// lookupTimeout bounds the DNS round trips of a single domain check.
const lookupTimeout = 3 * time.Second

// Resolver is the subset of net.Resolver used for domain checks.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailDomain returns the part after the last '@' of a syntactically valid
// bare address, or "" when the address is malformed or carries a display name.
func emailDomain(email string) string {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}

// IsEmailDomainValid accepts an address whose domain publishes MX records
// or at least resolves to an IP.
func IsEmailDomainValid(email string) bool {
	return EmailDomainChecker(net.DefaultResolver)(email)
}

func EmailDomainChecker(r Resolver) func(string) bool {
	return func(email string) bool {
		domain := emailDomain(email)
		if domain == "" {
			return false
		}

		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
			return true
		}
		if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
			return true
		}
		return false
	}
}
