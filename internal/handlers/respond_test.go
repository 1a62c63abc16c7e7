package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-platform/internal/apperr"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestSucceeded(t *testing.T) {
	ok := testContext(t, "/")
	ok.JSON(http.StatusCreated, gin.H{"id": "1"})
	if !Succeeded(ok) {
		t.Error("201 response should count as success")
	}

	failed := testContext(t, "/")
	abortWithError(failed, apperr.InvalidRequest("bad input"))
	if Succeeded(failed) {
		t.Error("400 response should not count as success")
	}

	conflict := testContext(t, "/")
	abortWithError(conflict, apperr.InvalidState("already submitted"))
	if Succeeded(conflict) {
		t.Error("409 response should not count as success")
	}
}

func TestAbortWithErrorStatusMapping(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.NotFound("missing"), http.StatusNotFound},
		{"invalid request", apperr.InvalidRequest("bad"), http.StatusBadRequest},
		{"forbidden", apperr.Forbidden("not yours"), http.StatusForbidden},
		{"invalid state", apperr.InvalidState("done"), http.StatusConflict},
		{"upstream", apperr.Upstream("generation failed", nil), http.StatusBadGateway},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := testContext(t, "/")
			abortWithError(c, tc.err)
			if c.Writer.Status() != tc.want {
				t.Errorf("status %d, want %d", c.Writer.Status(), tc.want)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	testCases := []struct {
		name string
		url  string
		want int
	}{
		{"absent uses fallback", "/", 10},
		{"valid value", "/?limit=25", 25},
		{"junk uses fallback", "/?limit=abc", 10},
		{"zero uses fallback", "/?limit=0", 10},
		{"negative uses fallback", "/?limit=-5", 10},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := testContext(t, tc.url)
			if got := queryInt(c, "limit", 10); got != tc.want {
				t.Errorf("queryInt = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestQueryLimitClamped(t *testing.T) {
	c := testContext(t, "/?limit=1000000")
	if got := queryLimit(c, 10); got != maxPageLimit {
		t.Errorf("oversized limit returned %d, want %d", got, maxPageLimit)
	}

	c = testContext(t, "/?limit=50")
	if got := queryLimit(c, 10); got != 50 {
		t.Errorf("in-range limit returned %d, want 50", got)
	}
}
