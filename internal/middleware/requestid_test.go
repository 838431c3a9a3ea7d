package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID_HeaderIsSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 200 {
		t.Fatalf("code=%d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestRequestID_Inbound(t *testing.T) {
	const valid = "123e4567-e89b-12d3-a456-426614174000"
	cases := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{name: "valid uuid is propagated", inbound: valid, reuse: true},
		{name: "garbage is replaced", inbound: "<script>", reuse: false},
		{name: "absent", inbound: "", reuse: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RequestID())
			var seen string
			r.GET("/", func(c *gin.Context) { seen = c.GetString(RequestIDKey); c.Status(200) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.inbound != "" {
				req.Header.Set(RequestIDHeader, tc.inbound)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got != seen || got == "" {
				t.Fatalf("header %q and context %q differ", got, seen)
			}
			if (got == tc.inbound) != tc.reuse {
				t.Fatalf("got %q, inbound %q, reuse=%v", got, tc.inbound, tc.reuse)
			}
		})
	}
}
