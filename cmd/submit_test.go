//go:build !integration

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCommand_WritesSink(t *testing.T) {
	clearUpstreamEnv(t)

	var row map[string]string
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&row)
		_, _ = w.Write([]byte(`ok`))
	}))
	defer sink.Close()
	t.Setenv("CSAT_SHEETS_WEBAPP_URL", sink.URL)

	out, err := executeCmd(t, "submit", "--phone", "0501234567", "--status", "unsatisfied", "--feedback", "late")

	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, true, res["success"])
	assert.Equal(t, "Unknown", res["firstName"])
	assert.Equal(t, false, res["isExisting"])
	assert.NotEmpty(t, res["submissionId"])

	assert.Equal(t, map[string]string{
		"firstName": "Unknown",
		"phone":     "501234567",
		"status":    "Unsatisfied",
		"feedback":  "late",
	}, row)
}

func TestSubmitCommand_SinkFailure(t *testing.T) {
	clearUpstreamEnv(t)

	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer sink.Close()
	t.Setenv("CSAT_SHEETS_WEBAPP_URL", sink.URL)

	_, err := executeCmd(t, "submit", "--phone", "501234567", "--status", "Satisfied")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink write failed")
}

func TestSubmitCommand_InvalidPhone(t *testing.T) {
	clearUpstreamEnv(t)

	_, err := executeCmd(t, "submit", "--phone", "123", "--status", "Satisfied")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid phone")
}

func TestLookupCommand(t *testing.T) {
	clearUpstreamEnv(t)

	crm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/LeadManagement.svc/RetrieveLeadByPhoneNumber", r.URL.Path)
		if r.URL.Query().Get("phone") == "+971-501234567" {
			_, _ = w.Write([]byte(`[{"FirstName":"Amina","ProspectStage":"Customer"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer crm.Close()
	t.Setenv("CSAT_LEADSQUARED_ACCESS_KEY", "ak")
	t.Setenv("CSAT_LEADSQUARED_SECRET_KEY", "sk")
	t.Setenv("CSAT_LEADSQUARED_BASE_URL", crm.URL)

	out, err := executeCmd(t, "lookup", "--phone", "971501234567")

	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, map[string]any{"success": true, "firstName": "Amina", "exists": true}, res)
}
