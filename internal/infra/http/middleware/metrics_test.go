package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/leads/{leadId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/leads/{leadId}", "404"))
	for _, id := range []string{"LEAD_001", "LEAD_002"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/leads/{leadId}", "404"))

	assert.Equal(t, 2.0, after-before)
}

func TestRecordDomainCounters(t *testing.T) {
	lead := testutil.ToFloat64(leadsCreated.WithLabelValues("existing"))
	RecordLeadCreated("existing")
	assert.Equal(t, lead+1, testutil.ToFloat64(leadsCreated.WithLabelValues("existing")))

	conv := testutil.ToFloat64(leadConversions.WithLabelValues("error"))
	RecordConversion("")
	assert.Equal(t, conv+1, testutil.ToFloat64(leadConversions.WithLabelValues("error")))

	stored := testutil.ToFloat64(roomsGenerated.WithLabelValues("stored"))
	dropped := testutil.ToFloat64(roomsGenerated.WithLabelValues("dropped"))
	RecordRoomsGenerated(40, 3)
	assert.Equal(t, stored+40, testutil.ToFloat64(roomsGenerated.WithLabelValues("stored")))
	assert.Equal(t, dropped+3, testutil.ToFloat64(roomsGenerated.WithLabelValues("dropped")))

	tenants := testutil.ToFloat64(tenantsCreated.WithLabelValues("conversion"))
	RecordTenantCreated("conversion")
	assert.Equal(t, tenants+1, testutil.ToFloat64(tenantsCreated.WithLabelValues("conversion")))
}
