// Методы эндпоинтов
package junglescout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// maxKeywordASINs — API принимает не больше 10 ASIN в одном запросе.
const maxKeywordASINs = 10

// SalesEstimatesQuery — параметры sales_estimates_query.
type SalesEstimatesQuery struct {
	ASIN        string
	StartDate   time.Time
	EndDate     time.Time
	Marketplace Marketplace // пусто — маркетплейс клиента
}

func (q SalesEstimatesQuery) validate() error {
	if strings.TrimSpace(q.ASIN) == "" {
		return fmt.Errorf("%w: asin is required", ErrInvalidQuery)
	}
	if q.StartDate.IsZero() || q.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidQuery)
	}
	if q.EndDate.Before(q.StartDate) {
		return fmt.Errorf("%w: end_date %s is before start_date %s", ErrInvalidQuery,
			q.EndDate.Format(dateLayout), q.StartDate.Format(dateLayout))
	}
	return nil
}

// SalesEstimates возвращает дневную оценку продаж ASIN за период.
func (c *Client) SalesEstimates(ctx context.Context, q SalesEstimatesQuery) ([]SalesEstimate, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	marketplace, err := c.ResolveMarketplace(q.Marketplace)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("marketplace", string(marketplace))
	params.Set("asin", strings.TrimSpace(q.ASIN))
	params.Set("start_date", q.StartDate.Format(dateLayout))
	params.Set("end_date", q.EndDate.Format(dateLayout))

	var resp APIResponse[SalesEstimate]
	if err := c.Do(ctx, http.MethodGet, params, nil, &resp, "sales_estimates_query"); err != nil {
		return nil, err
	}

	return attributes(resp), nil
}

// KeywordsByASINQuery — параметры keywords_by_asin_query.
type KeywordsByASINQuery struct {
	ASINs                       []string
	IncludeVariants             bool
	MinMonthlySearchVolumeExact *int
	MaxMonthlySearchVolumeExact *int
	MinWordCount                *int
	MaxWordCount                *int
	Sort                        string      // например "-monthly_search_volume_exact"
	Marketplace                 Marketplace // пусто — маркетплейс клиента
}

func (q KeywordsByASINQuery) validate() error {
	if len(q.ASINs) == 0 {
		return fmt.Errorf("%w: at least one asin is required", ErrInvalidQuery)
	}
	if len(q.ASINs) > maxKeywordASINs {
		return fmt.Errorf("%w: at most %d asins allowed, got %d", ErrInvalidQuery, maxKeywordASINs, len(q.ASINs))
	}
	for _, asin := range q.ASINs {
		if strings.TrimSpace(asin) == "" {
			return fmt.Errorf("%w: empty asin", ErrInvalidQuery)
		}
	}
	return nil
}

// KeywordsByASIN возвращает ключевые слова, по которым ранжируются ASIN.
// Возвращается только первая страница ответа.
func (c *Client) KeywordsByASIN(ctx context.Context, q KeywordsByASINQuery) ([]KeywordByASIN, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	marketplace, err := c.ResolveMarketplace(q.Marketplace)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("marketplace", string(marketplace))
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}

	asins := make([]string, 0, len(q.ASINs))
	for _, asin := range q.ASINs {
		asins = append(asins, strings.TrimSpace(asin))
	}

	body := requestBody[keywordsByASINAttributes]{
		Data: requestData[keywordsByASINAttributes]{
			Type: "keywords_by_asin_query",
			Attributes: keywordsByASINAttributes{
				ASINs:                       asins,
				IncludeVariants:             q.IncludeVariants,
				MinMonthlySearchVolumeExact: q.MinMonthlySearchVolumeExact,
				MaxMonthlySearchVolumeExact: q.MaxMonthlySearchVolumeExact,
				MinWordCount:                q.MinWordCount,
				MaxWordCount:                q.MaxWordCount,
			},
		},
	}

	var resp APIResponse[KeywordByASIN]
	if err := c.Do(ctx, http.MethodPost, params, body, &resp, "keywords", "keywords_by_asin_query"); err != nil {
		return nil, err
	}

	return attributes(resp), nil
}

// attributes разворачивает ресурсы JSON:API в срез атрибутов.
func attributes[T any](resp APIResponse[T]) []T {
	out := make([]T, 0, len(resp.Data))
	for _, r := range resp.Data {
		out = append(out, r.Attributes)
	}
	return out
}
