package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocRenders(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		BasePath    string                    `json:"basePath"`
		Info        map[string]any            `json:"info"`
		Paths       map[string]map[string]any `json:"paths"`
		Definitions map[string]any            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Equal(t, "Trading Journal API", doc.Info["title"])
	for path, method := range map[string]string{
		"/trades":                      "post",
		"/trades/{id}":                 "delete",
		"/positions/{id}/exits":        "post",
		"/positions/{id}/preview-exit": "post",
		"/sync/status":                 "get",
		"/portfolio/summary":           "get",
		"/metrics":                     "get",
	} {
		assert.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], method, path)
	}
	assert.Contains(t, doc.Definitions, "dto.TradeRequest")
	assert.Contains(t, doc.Definitions, "entity.Position")
}
