package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosting_MetadataValue(t *testing.T) {
	posting := Posting{
		Title:    "Go Developer",
		Metadata: map[string]string{"company": "Acme", "location": "Toronto"},
	}

	assert.Equal(t, "Acme", posting.MetadataValue("company"))
	assert.Equal(t, "", posting.MetadataValue("description"))
}

func TestPosting_MetadataValue_NilMetadata(t *testing.T) {
	posting := Posting{Title: "Go Developer"}

	assert.Equal(t, "", posting.MetadataValue("company"))
}
