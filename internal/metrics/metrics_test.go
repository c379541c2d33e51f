package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ping", "204"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ping", "204")))
}

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(orderOperations.WithLabelValues("place", "success"))
	RecordOrderOperation("place", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(orderOperations.WithLabelValues("place", "success")))

	units := testutil.ToFloat64(stockMovements.WithLabelValues("restock"))
	RecordStockMovement("restock", 3)
	assert.Equal(t, units+3, testutil.ToFloat64(stockMovements.WithLabelValues("restock")))
}
