package junglescout

// Модели данных JSON:API

// APIResponse — обёртка ответа JSON:API.
type APIResponse[T any] struct {
	Data  []Resource[T] `json:"data"`
	Links Links         `json:"links"`
	Meta  Meta          `json:"meta"`
}

// Resource — один объект JSON:API.
type Resource[T any] struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes T      `json:"attributes"`
}

// Links — ссылки из ответа. Next выставляется API, но клиент
// по ней не ходит (пагинации нет).
type Links struct {
	Self string `json:"self,omitempty"`
	Next string `json:"next,omitempty"`
}

// Meta — метаданные ответа.
type Meta struct {
	TotalItems int `json:"total_items,omitempty"`
}

// requestBody — тело POST запроса в формате JSON:API.
type requestBody[T any] struct {
	Data requestData[T] `json:"data"`
}

type requestData[T any] struct {
	Type       string `json:"type"`
	Attributes T      `json:"attributes"`
}

// ============================================================================
// Sales Estimates
// ============================================================================

// SalesEstimate — оценка продаж ASIN за период.
type SalesEstimate struct {
	ASIN         string               `json:"asin"`
	IsParent     bool                 `json:"is_parent"`
	IsVariant    bool                 `json:"is_variant"`
	IsStandalone bool                 `json:"is_standalone"`
	ParentASIN   *string              `json:"parent_asin"`
	Variants     []string             `json:"variants"`
	Data         []SalesEstimatePoint `json:"data"`
}

// SalesEstimatePoint — значение за один день.
type SalesEstimatePoint struct {
	Date               string   `json:"date"` // YYYY-MM-DD
	EstimatedUnitsSold int      `json:"estimated_units_sold"`
	LastKnownPrice     *float64 `json:"last_known_price"`
}

// TotalUnits суммирует оценку продаж за период.
func (s SalesEstimate) TotalUnits() int {
	total := 0
	for _, p := range s.Data {
		total += p.EstimatedUnitsSold
	}
	return total
}

// ============================================================================
// Keywords by ASIN
// ============================================================================

// KeywordByASIN — ключевое слово, по которому ранжируются ASIN.
type KeywordByASIN struct {
	Country                  string   `json:"country"`
	Name                     string   `json:"name"`
	PrimaryASIN              string   `json:"primary_asin"`
	MonthlyTrend             *float64 `json:"monthly_trend"`
	QuarterlyTrend           *float64 `json:"quarterly_trend"`
	MonthlySearchVolumeExact *int     `json:"monthly_search_volume_exact"`
	MonthlySearchVolumeBroad *int     `json:"monthly_search_volume_broad"`
	DominantCategory         string   `json:"dominant_category"`
	RecommendedPromotions    *int     `json:"recommended_promotions"`
	EaseOfRankingScore       *int     `json:"ease_of_ranking_score"`
	RelevancyScore           *int     `json:"relevancy_score"`
	OrganicProductCount      *int     `json:"organic_product_count"`
	SponsoredProductCount    *int     `json:"sponsored_product_count"`
	OrganicRank              *int     `json:"organic_rank"`
	SponsoredRank            *int     `json:"sponsored_rank"`
	OverallRank              *int     `json:"overall_rank"`
	UpdatedAt                string   `json:"updated_at"`
}

// keywordsByASINAttributes — атрибуты тела запроса keywords_by_asin_query.
type keywordsByASINAttributes struct {
	ASINs                       []string `json:"asins"`
	IncludeVariants             bool     `json:"include_variants"`
	MinMonthlySearchVolumeExact *int     `json:"min_monthly_search_volume_exact,omitempty"`
	MaxMonthlySearchVolumeExact *int     `json:"max_monthly_search_volume_exact,omitempty"`
	MinWordCount                *int     `json:"min_word_count,omitempty"`
	MaxWordCount                *int     `json:"max_word_count,omitempty"`
}

// ============================================================================
// Errors
// ============================================================================

// APIErrorDetail — элемент массива "errors" из ответа с ошибкой.
type APIErrorDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Code   string `json:"code"`
	Status string `json:"status"`
}
