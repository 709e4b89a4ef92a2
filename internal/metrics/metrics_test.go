package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/api/admin/api-keys/12":       "/api/admin/api-keys/{id}",
		"/api/marketplace/products/3/": "/api/marketplace/products/{id}/",
		"/api/reviews":                 "/api/reviews",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePath(in), in)
	}
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(WalrusOperations.WithLabelValues("upload", "ok"))
	IncWalrus("upload", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(WalrusOperations.WithLabelValues("upload", "ok")))

	SetProbeUp("sui", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(ProbeUp.WithLabelValues("sui")))
	SetProbeUp("sui", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(ProbeUp.WithLabelValues("sui")))
}
