package domain

// Posting is one normalised job listing returned by a provider.
type Posting struct {
	// Title is the job title as reported by the provider.
	Title string

	// Link is the listing URL. It is the stable identity of a posting:
	// rows in the backing store are keyed by it, and it must be non-empty.
	Link string

	// Source is the human-readable label of the data source
	// (e.g. "LinkedIn (SerpAPI)").
	Source string

	// Provider is the registry ID of the provider that returned the posting.
	Provider string

	// Metadata carries free-form per-provider fields (snippet, posted_at,
	// location, ...). Keys become dynamic columns in the backing store.
	Metadata map[string]string
}

// MetadataValue returns a posting field with fallback to nested metadata.
// Used when composing enrichment prompts, where providers disagree about
// whether a field lives on the posting or inside metadata.
func (p Posting) MetadataValue(key string) string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata[key]
}

// JobRecord is the fully merged record handed to the repository for upsert.
type JobRecord struct {
	FetchedAt string
	Role      string
	Title     string
	Source    string
	Link      string

	// Metadata and Enrichment are merged into one dynamic-field mapping on
	// upsert; enrichment values win on key collision.
	Metadata   map[string]string
	Enrichment map[string]string
}

// RunSummary reports the outcome of a single pipeline run.
type RunSummary struct {
	RunID      string
	Roles      int
	Postings   int
	Created    int
	Updated    int
	Enriched   int
	EnrichErrs int
}
