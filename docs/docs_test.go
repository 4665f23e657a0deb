package docs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	operations := 0
	for _, item := range doc.Paths.Map() {
		operations += len(item.Operations())
	}
	assert.Equal(t, 44, operations)

	docs := doc.Paths.Find("/job-application/applicants/{id}/documents/{kind}")
	require.NotNil(t, docs)
	require.NotNil(t, docs.Get)
	assert.NotNil(t, docs.Get.Responses.Status(302))
}

func TestRaw(t *testing.T) {
	assert.NotEmpty(t, Raw())
}
