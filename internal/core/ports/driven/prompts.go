package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// Useful when prompts have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptSystem is the system message for enrichment calls.
	PromptSystem = "system"

	// PromptUser is the user message template for enrichment calls.
	// It supports {candidate_profile}, {job_title}, {company}, {location},
	// {description}, and {link} placeholders. Enrichment fails when this
	// template resolves to empty.
	PromptUser = "user"

	// PromptCandidateProfile describes the candidate on whose behalf
	// postings are evaluated. Substituted into the user template.
	PromptCandidateProfile = "candidate_profile"
)
