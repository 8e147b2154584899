package junglescout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Ошибки клиента.
//
// Вызывающий код проверяет их через errors.Is(). Ни одна из них
// не ретраится на этом уровне.

// ErrUnresolvableMarketplace возвращается когда ни переданный маркетплейс,
// ни маркетплейс клиента по умолчанию не является допустимым значением.
var ErrUnresolvableMarketplace = fmt.Errorf("marketplace cannot be resolved")

// ErrInvalidAPIType возвращается для значения вне набора ApiType.
var ErrInvalidAPIType = fmt.Errorf("invalid api type")

// ErrMissingCredentials возвращается при пустом имени ключа или ключе.
var ErrMissingCredentials = fmt.Errorf("api_key_name and api_key are required")

// ErrNotLoggedIn возвращается при попытке запроса через сессию без логина.
var ErrNotLoggedIn = fmt.Errorf("session is not logged in")

// ErrSessionClosed возвращается при использовании закрытой сессии.
var ErrSessionClosed = fmt.Errorf("session is closed")

// ErrInvalidQuery возвращается когда параметры эндпоинта не прошли валидацию.
var ErrInvalidQuery = fmt.Errorf("invalid query")

// ErrHTTPStatus — базовая ошибка для ответов с неуспешным статусом.
var ErrHTTPStatus = fmt.Errorf("http status error")

// defaultStatusMessage используется когда ответ оказался успешным.
const defaultStatusMessage = "something went wrong"

// HTTPStatusError — нормализованная ошибка неуспешного HTTP ответа.
//
// Message содержит исходную строку статуса и тело ответа. Если тело
// не удалось разобрать как JSON, в Message попадает сырой текст,
// а ошибка разбора сохраняется в BodyErr.
type HTTPStatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       any // разобранный JSON (nil если не удалось)
	RawBody    []byte
	BodyErr    error
	Message    string
}

func (e *HTTPStatusError) Error() string {
	return e.Message
}

// Is реализует errors.Is() для ErrHTTPStatus.
func (e *HTTPStatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// Unwrap возвращает ошибку разбора тела, если она была.
func (e *HTTPStatusError) Unwrap() error {
	return e.BodyErr
}

// statusLine формирует сообщение в духе "Client error '404 Not Found' for url '...'".
// Для успешных статусов возвращает пустую строку.
func statusLine(url string, code int, status string) string {
	if status == "" {
		status = fmt.Sprintf("%d %s", code, http.StatusText(code))
	}

	var kind string
	switch {
	case code >= 100 && code < 200:
		kind = "Informational response"
	case code >= 300 && code < 400:
		kind = "Redirect response"
	case code >= 400 && code < 500:
		kind = "Client error"
	case code >= 500 && code < 600:
		kind = "Server error"
	default:
		return ""
	}
	return fmt.Sprintf("%s '%s' for url '%s'", kind, status, url)
}

// describeBody разбирает тело как JSON и возвращает компактное представление.
// При ошибке разбора возвращается сырой текст и ошибка.
func describeBody(raw []byte) (any, string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, "", fmt.Errorf("empty response body")
	}

	var parsed any
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return nil, string(trimmed), fmt.Errorf("decode error body: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return parsed, string(trimmed), nil
	}
	return parsed, buf.String(), nil
}

// APIErrors извлекает массив "errors" из тела ответа (формат JSON:API).
// Возвращает nil, если тело не содержит такого массива.
func (e *HTTPStatusError) APIErrors() []APIErrorDetail {
	var payload struct {
		Errors []APIErrorDetail `json:"errors"`
	}
	if err := json.Unmarshal(e.RawBody, &payload); err != nil {
		return nil
	}
	return payload.Errors
}
