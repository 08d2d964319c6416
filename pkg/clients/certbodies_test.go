package clients

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	bodies := []models.CertificationBody{
		{ID: "b-1", DisplayName: "Zeta Board", MembershipTier: "member"},
		{ID: "b-2", DisplayName: "Alpha Board", MembershipTier: "gold"},
		{ID: "b-3", DisplayName: "Beta Board", MembershipTier: "platinum"},
		{ID: "b-4", DisplayName: "Gamma Board", MembershipTier: "gold"},
		{ID: "b-5", DisplayName: "Unknown Tier", MembershipTier: "bronze"},
	}

	ranked := Rank(bodies)

	require.Len(t, ranked, 6)
	assert.Equal(t, models.InHouseIssuerID, ranked[0].ID)
	assert.Equal(t, "Beta Board", ranked[1].DisplayName)
	assert.Equal(t, "Alpha Board", ranked[2].DisplayName)
	assert.Equal(t, "Gamma Board", ranked[3].DisplayName)
	assert.Equal(t, "Zeta Board", ranked[4].DisplayName)
	assert.Equal(t, "Unknown Tier", ranked[5].DisplayName)
}

func TestRank_Empty(t *testing.T) {
	ranked := Rank(nil)

	require.Len(t, ranked, 1)
	assert.Equal(t, models.InHouseIssuerID, ranked[0].ID)
}

func TestCertBodyClient_Bodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/certification-bodies", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "b-1", "display_name": "Maritime Safety Board", "membership_tier": "gold"},
			{"id": "b-2", "display_name": "Offshore Council", "membership_tier": "platinum"}
		]`))
	}))
	defer server.Close()

	client := NewCertBodyClient(server.URL, nil, slog.Default())

	bodies, err := client.Bodies(context.Background())
	require.NoError(t, err)

	require.Len(t, bodies, 3)
	assert.Equal(t, models.InHouseIssuerID, bodies[0].ID)
	assert.Equal(t, "Offshore Council", bodies[1].DisplayName)
	assert.Equal(t, "Maritime Safety Board", bodies[2].DisplayName)
}

func TestCertBodyClient_Bodies_EndpointError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewCertBodyClient(server.URL, nil, slog.Default())

	_, err := client.Bodies(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
