package serpapi

import (
	"context"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
)

// Ensure LinkedInProvider implements the interface.
var _ driven.Provider = (*LinkedInProvider)(nil)

// LinkedIn provider identity.
const (
	LinkedInID    = "serpapi_linkedin"
	LinkedInLabel = "LinkedIn (SerpAPI)"

	linkedInSite = "linkedin.com/jobs"
)

// LinkedInProvider searches LinkedIn job listings through SerpAPI.
type LinkedInProvider struct {
	client *Client
}

// NewLinkedInProvider creates a LinkedIn provider over the shared client.
func NewLinkedInProvider(client *Client) *LinkedInProvider {
	return &LinkedInProvider{client: client}
}

// ID returns the registry identifier.
func (p *LinkedInProvider) ID() string {
	return LinkedInID
}

// Label returns the source label stamped on postings.
func (p *LinkedInProvider) Label() string {
	return LinkedInLabel
}

// Search returns LinkedIn postings for the role in the location.
func (p *LinkedInProvider) Search(
	ctx context.Context,
	role, location string,
	limit int,
	filters domain.SearchFilters,
) ([]domain.Posting, error) {
	return p.client.search(ctx, linkedInSite, role, location, limit, filters)
}
