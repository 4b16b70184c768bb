package serpapi

import (
	"context"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
)

// Ensure IndeedProvider implements the interface.
var _ driven.Provider = (*IndeedProvider)(nil)

// Indeed provider identity.
const (
	IndeedID    = "serpapi_indeed"
	IndeedLabel = "Indeed (SerpAPI)"

	indeedSite = "indeed.com/viewjob"
)

// IndeedProvider searches Indeed job listings through SerpAPI.
type IndeedProvider struct {
	client *Client
}

// NewIndeedProvider creates an Indeed provider over the shared client.
func NewIndeedProvider(client *Client) *IndeedProvider {
	return &IndeedProvider{client: client}
}

// ID returns the registry identifier.
func (p *IndeedProvider) ID() string {
	return IndeedID
}

// Label returns the source label stamped on postings.
func (p *IndeedProvider) Label() string {
	return IndeedLabel
}

// Search returns Indeed postings for the role in the location.
func (p *IndeedProvider) Search(
	ctx context.Context,
	role, location string,
	limit int,
	filters domain.SearchFilters,
) ([]domain.Posting, error) {
	return p.client.search(ctx, indeedSite, role, location, limit, filters)
}
