package junglescout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/junglescout-go/pkg/config"
)

const salesEstimatesJSON = `{
  "data": [{
    "id": "us/B0CXYZ1234",
    "type": "sales_estimate_result",
    "attributes": {
      "asin": "B0CXYZ1234",
      "is_parent": false,
      "is_variant": false,
      "is_standalone": true,
      "parent_asin": null,
      "variants": [],
      "data": [
        {"date": "2026-09-01", "estimated_units_sold": 12, "last_known_price": 19.99},
        {"date": "2026-09-02", "estimated_units_sold": 30, "last_known_price": null}
      ]
    }
  }],
  "links": {"self": "https://developer.junglescout.com/api/sales_estimates_query"},
  "meta": {"total_items": 1}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, marketplace string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewWithHTTPClient(context.Background(), config.JungleScoutConfig{
		APIKeyName:  "key-name",
		APIKey:      "secret",
		Marketplace: marketplace,
		BaseURL:     srv.URL,
	}, srv.Client())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func assertJungleScoutHeaders(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, AcceptHeader, r.Header.Get("Accept"))
	assert.Equal(t, ContentTypeHeader, r.Header.Get("Content-Type"))
	assert.Equal(t, "key-name:secret", r.Header.Get("Authorization"))
	assert.Equal(t, "junglescout", r.Header.Get("X_API_Type"))
}

func date(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSalesEstimates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sales_estimates_query", r.URL.Path)
		assertJungleScoutHeaders(t, r)

		q := r.URL.Query()
		assert.Equal(t, "us", q.Get("marketplace"))
		assert.Equal(t, "B0CXYZ1234", q.Get("asin"))
		assert.Equal(t, "2026-09-01", q.Get("start_date"))
		assert.Equal(t, "2026-09-02", q.Get("end_date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(salesEstimatesJSON))
	}, "us")

	estimates, err := c.SalesEstimates(context.Background(), SalesEstimatesQuery{
		ASIN:      "B0CXYZ1234",
		StartDate: date("2026-09-01"),
		EndDate:   date("2026-09-02"),
	})
	require.NoError(t, err)

	require.Len(t, estimates, 1)
	e := estimates[0]
	assert.Equal(t, "B0CXYZ1234", e.ASIN)
	assert.True(t, e.IsStandalone)
	assert.Nil(t, e.ParentASIN)
	require.Len(t, e.Data, 2)
	require.NotNil(t, e.Data[0].LastKnownPrice)
	assert.InDelta(t, 19.99, *e.Data[0].LastKnownPrice, 0.0001)
	assert.Nil(t, e.Data[1].LastKnownPrice)
	assert.Equal(t, 42, e.TotalUnits())
}

func TestSalesEstimates_MarketplaceOverride(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "de", r.URL.Query().Get("marketplace"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	}, "us")

	estimates, err := c.SalesEstimates(context.Background(), SalesEstimatesQuery{
		ASIN:        "B0CXYZ1234",
		StartDate:   date("2026-09-01"),
		EndDate:     date("2026-09-01"),
		Marketplace: MarketplaceDE,
	})
	require.NoError(t, err)
	assert.Empty(t, estimates)
}

func TestSalesEstimates_UnresolvableMarketplaceSkipsRequest(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}, "")

	_, err := c.SalesEstimates(context.Background(), SalesEstimatesQuery{
		ASIN:      "B0CXYZ1234",
		StartDate: date("2026-09-01"),
		EndDate:   date("2026-09-02"),
	})
	assert.ErrorIs(t, err, ErrUnresolvableMarketplace)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestSalesEstimates_InvalidQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	}, "us")

	tests := []struct {
		name string
		q    SalesEstimatesQuery
	}{
		{"missing asin", SalesEstimatesQuery{StartDate: date("2026-09-01"), EndDate: date("2026-09-02")}},
		{"missing dates", SalesEstimatesQuery{ASIN: "B0CXYZ1234"}},
		{"end before start", SalesEstimatesQuery{ASIN: "B0CXYZ1234", StartDate: date("2026-09-02"), EndDate: date("2026-09-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.SalesEstimates(context.Background(), tt.q)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestSalesEstimates_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"title":"Unauthorized","detail":"Invalid API key","status":"401"}]}`))
	}, "us")

	_, err := c.SalesEstimates(context.Background(), SalesEstimatesQuery{
		ASIN:      "B0CXYZ1234",
		StartDate: date("2026-09-01"),
		EndDate:   date("2026-09-02"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPStatus)

	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "Client error '401 Unauthorized'")
	assert.Contains(t, err.Error(), "Invalid API key")
	require.Len(t, statusErr.APIErrors(), 1)
	assert.Equal(t, "401", statusErr.APIErrors()[0].Status)
}

func TestKeywordsByASIN(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/keywords/keywords_by_asin_query", r.URL.Path)
		assertJungleScoutHeaders(t, r)
		assert.Equal(t, "uk", r.URL.Query().Get("marketplace"))
		assert.Equal(t, "-monthly_search_volume_exact", r.URL.Query().Get("sort"))

		var body struct {
			Data struct {
				Type       string         `json:"type"`
				Attributes map[string]any `json:"attributes"`
			} `json:"data"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "keywords_by_asin_query", body.Data.Type)
		assert.Equal(t, []any{"B0CXYZ1234", "B0ABC00001"}, body.Data.Attributes["asins"])
		assert.Equal(t, true, body.Data.Attributes["include_variants"])
		assert.Equal(t, float64(100), body.Data.Attributes["min_monthly_search_volume_exact"])
		assert.NotContains(t, body.Data.Attributes, "max_word_count")

		_, _ = w.Write([]byte(`{"data":[{"id":"uk/red shoes","type":"keywords_by_asin_result","attributes":{
			"country":"uk","name":"red shoes","primary_asin":"B0CXYZ1234",
			"monthly_search_volume_exact":1500,"organic_rank":3,"sponsored_rank":null}}],
			"links":{"next":"https://developer.junglescout.com/api/keywords/keywords_by_asin_query?page[cursor]=x"},
			"meta":{"total_items":250}}`))
	}, "")

	minVolume := 100
	kws, err := c.KeywordsByASIN(context.Background(), KeywordsByASINQuery{
		ASINs:                       []string{"B0CXYZ1234", " B0ABC00001 "},
		IncludeVariants:             true,
		MinMonthlySearchVolumeExact: &minVolume,
		Sort:                        "-monthly_search_volume_exact",
		Marketplace:                 MarketplaceUK,
	})
	require.NoError(t, err)

	require.Len(t, kws, 1)
	assert.Equal(t, "red shoes", kws[0].Name)
	require.NotNil(t, kws[0].MonthlySearchVolumeExact)
	assert.Equal(t, 1500, *kws[0].MonthlySearchVolumeExact)
	require.NotNil(t, kws[0].OrganicRank)
	assert.Equal(t, 3, *kws[0].OrganicRank)
	assert.Nil(t, kws[0].SponsoredRank)
}

func TestKeywordsByASIN_InvalidQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	}, "us")

	tooMany := make([]string, maxKeywordASINs+1)
	for i := range tooMany {
		tooMany[i] = "B0CXYZ1234"
	}

	for _, asins := range [][]string{nil, {" "}, tooMany} {
		_, err := c.KeywordsByASIN(context.Background(), KeywordsByASINQuery{ASINs: asins})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	}
}

func TestNewWithHTTPClient_ConfigErrors(t *testing.T) {
	base := config.JungleScoutConfig{APIKeyName: "n", APIKey: "k"}

	cfg := base
	cfg.APIType = "soap"
	_, err := NewWithHTTPClient(context.Background(), cfg, &mockHTTPClient{})
	assert.ErrorIs(t, err, ErrInvalidAPIType)

	cfg = base
	cfg.Marketplace = "mars"
	_, err = NewWithHTTPClient(context.Background(), cfg, &mockHTTPClient{})
	assert.ErrorIs(t, err, ErrUnresolvableMarketplace)

	_, err = NewWithHTTPClient(context.Background(), config.JungleScoutConfig{}, &mockHTTPClient{})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestNew_InvalidTimeout(t *testing.T) {
	_, err := New(context.Background(), config.JungleScoutConfig{APIKeyName: "n", APIKey: "k", Timeout: "soon"})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(context.Background(), config.JungleScoutConfig{APIKeyName: "n", APIKey: "k", Marketplace: "ca"})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, ApiTypeJS, c.APIType())
	assert.Equal(t, MarketplaceCA, c.Marketplace())
	assert.True(t, c.Session().LoggedIn())
}
