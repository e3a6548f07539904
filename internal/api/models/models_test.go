// Package models_test provides behavior tests for the API models package.
package models_test

import (
	"encoding/json"
	"testing"

	"github.com/jroosing/semcache/internal/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIConfigResponse_OmitsSecrets(t *testing.T) {
	data, err := json.Marshal(models.APIConfigResponse{Enabled: true, Host: "0.0.0.0", Port: 8080})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "api_key")
	assert.NotContains(t, string(data), "pages_dir")
}

func TestServerStatsResponse_OmitsMissingEngine(t *testing.T) {
	data, err := json.Marshal(models.ServerStatsResponse{Uptime: "1s"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"mdns"`)
}

func TestBrowseResponse_FieldNames(t *testing.T) {
	resp := models.BrowseResponse{
		Type: "_semcache._tcp",
		Instances: []models.ServiceInstanceResponse{{
			ServiceType:  "_semcache._tcp",
			InstanceName: "P",
			DomainName:   "p.local",
			IPAddress:    "192.168.1.9",
			Port:         9,
		}},
		Count: 1,
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	inst := raw["instances"].([]any)[0].(map[string]any)
	assert.Equal(t, "P", inst["instance_name"])
	assert.Equal(t, "p.local", inst["domain_name"])
	assert.Equal(t, "192.168.1.9", inst["ip_address"])
	assert.InDelta(t, 9, inst["port"], 0)
}
