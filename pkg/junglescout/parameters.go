package junglescout

import (
	"fmt"
	"strings"
)

// ApiType выбирает вариант API (и значение заголовка X_API_Type при логине).
type ApiType string

const (
	ApiTypeJS     ApiType = "junglescout"
	ApiTypeDynamo ApiType = "dynamo"
)

// Valid проверяет что значение входит в закрытый набор ApiType.
func (t ApiType) Valid() bool {
	switch t {
	case ApiTypeJS, ApiTypeDynamo:
		return true
	default:
		return false
	}
}

// ParseApiType преобразует строку из конфига в ApiType.
// Пустая строка даёт ApiTypeJS.
func ParseApiType(s string) (ApiType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "js", string(ApiTypeJS):
		return ApiTypeJS, nil
	case string(ApiTypeDynamo):
		return ApiTypeDynamo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAPIType, s)
}

// Marketplace — маркетплейс Amazon, в рамках которого выполняется запрос.
// Нулевое значение означает "не задан".
type Marketplace string

const (
	MarketplaceUS Marketplace = "us"
	MarketplaceUK Marketplace = "uk"
	MarketplaceDE Marketplace = "de"
	MarketplaceIN Marketplace = "in"
	MarketplaceCA Marketplace = "ca"
	MarketplaceFR Marketplace = "fr"
	MarketplaceIT Marketplace = "it"
	MarketplaceES Marketplace = "es"
	MarketplaceMX Marketplace = "mx"
	MarketplaceJP Marketplace = "jp"
)

type marketplaceInfo struct {
	id   string
	name string
}

var marketplaces = map[Marketplace]marketplaceInfo{
	MarketplaceUS: {"ATVPDKIKX0DER", "United States"},
	MarketplaceUK: {"A1F83G8C2ARO7P", "United Kingdom"},
	MarketplaceDE: {"A1PA6795UKMFR9", "Germany"},
	MarketplaceIN: {"A21TJRUUN4KGV", "India"},
	MarketplaceCA: {"A2EUQ1WTGCTBG2", "Canada"},
	MarketplaceFR: {"A13V1IB3VIYZZH", "France"},
	MarketplaceIT: {"APJ6JRA9NG5V4", "Italy"},
	MarketplaceES: {"A1RKKUPIHCS9HS", "Spain"},
	MarketplaceMX: {"A1AM78C64UM0Y8", "Mexico"},
	MarketplaceJP: {"A1VC38T7YXB528", "Japan"},
}

// Valid проверяет что маркетплейс входит в закрытый набор.
func (m Marketplace) Valid() bool {
	_, ok := marketplaces[m]
	return ok
}

// MarketplaceID возвращает идентификатор маркетплейса Amazon (пусто для невалидного).
func (m Marketplace) MarketplaceID() string {
	return marketplaces[m].id
}

// Name возвращает человекочитаемое название.
func (m Marketplace) Name() string {
	return marketplaces[m].name
}

// ParseMarketplace преобразует код страны ("us", "UK") в Marketplace.
// Пустая строка возвращает нулевое значение без ошибки.
func ParseMarketplace(s string) (Marketplace, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	m := Marketplace(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnresolvableMarketplace, s)
	}
	return m, nil
}

// Credentials — пара идентификаторов API ключа.
type Credentials struct {
	APIKeyName string
	APIKey     string
}

// String не раскрывает сам ключ.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{APIKeyName: %q, APIKey: ***}", c.APIKeyName)
}

func (c Credentials) authorization() string {
	return c.APIKeyName + ":" + c.APIKey
}
