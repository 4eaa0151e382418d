package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDocument(t *testing.T) {
	SwaggerInfo.Host = "api.example.com"
	SwaggerInfo.Schemes = []string{"https"}

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	info := doc["info"].(map[string]any)
	assert.Equal(t, "Nomia API", info["title"])
	assert.Equal(t, "api.example.com", doc["host"])
	assert.Equal(t, []any{"https"}, doc["schemes"])

	paths := doc["paths"].(map[string]any)
	for _, p := range []string{
		"/health",
		"/healthz",
		"/api/limits",
		"/api/teams",
		"/api/files/presign",
		"/api/files/represign",
		"/api/files/download-url",
		"/api/files/content",
		"/api/files",
	} {
		assert.Contains(t, paths, p)
	}

	defs := doc["definitions"].(map[string]any)
	assert.Contains(t, defs, "model.QuotaResult")
	assert.Contains(t, defs, "service.TeamListResult")
}
