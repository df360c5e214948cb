package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListCards(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		query     string
		status    int
		wantCount int
		wantFirst string
	}{
		{name: "all cards sorted by decisive string", query: "", status: http.StatusOK, wantCount: 30, wantFirst: "c4"},
		{name: "single", query: "?class=single", status: http.StatusOK, wantCount: 1, wantFirst: "c1"},
		{name: "double", query: "?class=double", status: http.StatusOK, wantCount: 1, wantFirst: "c2"},
		{name: "large", query: "?class=large", status: http.StatusOK, wantCount: 1, wantFirst: "c4"},
		{name: "ka-sa row", query: "?row=ka-sa", status: http.StatusOK, wantCount: 2, wantFirst: "c2"},
		{name: "unknown class", query: "?class=triple", status: http.StatusBadRequest},
		{name: "unknown row", query: "?row=zz", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp CatalogResponse
			var out interface{}
			if tt.status == http.StatusOK {
				out = &resp
			}
			w := s.do(http.MethodGet, "/api/catalog"+tt.query, nil, out)
			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantCount, resp.Count)
			assert.Len(t, resp.Cards, tt.wantCount)
			assert.Equal(t, tt.wantFirst, resp.Cards[0].ID)
		})
	}
}

func TestListCardsPreview(t *testing.T) {
	s := newTestServer(t)

	var resp CatalogResponse
	w := s.do(http.MethodGet, "/api/catalog?class=single", nil, &resp)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "むらさめの ...", resp.Cards[0].Preview)
	assert.Equal(t, 1, resp.Cards[0].Class)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
