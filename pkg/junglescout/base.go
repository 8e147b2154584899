// Package junglescout provides a client for the Jungle Scout developer API.
//
// BaseClient владеет одной аутентифицированной сессией и даёт эндпоинтам
// общие примитивы: заголовки, сборку URL, выбор маркетплейса и
// нормализацию HTTP ошибок. Client поверх него реализует конкретные
// эндпоинты.
//
// Вызовы синхронные, без retry, rate limiting и пагинации.
// Один экземпляр клиента рассчитан на одного владельца.
package junglescout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ilkoid/junglescout-go/pkg/utils"
)

// DefaultBaseURL — базовый URL API Jungle Scout.
const DefaultBaseURL = "https://developer.junglescout.com/api"

// Заголовки content negotiation, обязательные для каждого запроса.
const (
	AcceptHeader      = "application/vnd.junglescout.v1+json"
	ContentTypeHeader = "application/vnd.api+json"
)

// BaseClient — общая часть всех клиентов Jungle Scout.
type BaseClient[S Session] struct {
	apiType     ApiType
	marketplace Marketplace
	baseURL     string
	session     S
}

// Option настраивает BaseClient.
type Option func(*baseOptions)

type baseOptions struct {
	apiType     ApiType
	marketplace Marketplace
	baseURL     string
}

// WithAPIType задаёт вариант API (по умолчанию ApiTypeJS).
func WithAPIType(t ApiType) Option {
	return func(o *baseOptions) { o.apiType = t }
}

// WithMarketplace задаёт маркетплейс по умолчанию.
func WithMarketplace(m Marketplace) Option {
	return func(o *baseOptions) { o.marketplace = m }
}

// WithBaseURL переопределяет базовый URL (тесты, прокси).
func WithBaseURL(u string) Option {
	return func(o *baseOptions) { o.baseURL = strings.TrimRight(u, "/") }
}

// NewBaseClient создаёт сессию через factory и сразу логинит её.
//
// factory вызывается ровно один раз, Login — ровно один раз с переданными
// учётными данными и типом API. Ошибка Login возвращается как есть.
func NewBaseClient[S Session](ctx context.Context, creds Credentials, factory SessionFactory[S], opts ...Option) (*BaseClient[S], error) {
	if factory == nil {
		return nil, fmt.Errorf("session factory is required")
	}

	o := baseOptions{
		apiType: ApiTypeJS,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(&o)
	}

	session, err := factory()
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := session.Login(ctx, creds, o.apiType); err != nil {
		return nil, err
	}

	utils.Info("Jungle Scout session ready",
		"api_key_name", creds.APIKeyName,
		"api_type", o.apiType,
		"marketplace", o.marketplace)

	return &BaseClient[S]{
		apiType:     o.apiType,
		marketplace: o.marketplace,
		baseURL:     o.baseURL,
		session:     session,
	}, nil
}

// Session возвращает сессию клиента.
func (c *BaseClient[S]) Session() S {
	return c.session
}

// APIType возвращает тип API, с которым выполнен логин.
func (c *BaseClient[S]) APIType() ApiType {
	return c.apiType
}

// Marketplace возвращает маркетплейс по умолчанию (может быть пустым).
func (c *BaseClient[S]) Marketplace() Marketplace {
	return c.marketplace
}

// BaseURL возвращает базовый URL.
func (c *BaseClient[S]) BaseURL() string {
	return c.baseURL
}

// BuildHeaders возвращает фиксированные заголовки content negotiation.
func (c *BaseClient[S]) BuildHeaders() map[string]string {
	return map[string]string{
		"Accept":       AcceptHeader,
		"Content-Type": ContentTypeHeader,
	}
}

// BuildURL склеивает базовый URL и сегменты пути через "/".
//
// Сегменты приводятся к строке через fmt.Sprint и не экранируются.
// Query string добавляется только для непустых params.
func (c *BaseClient[S]) BuildURL(params url.Values, segments ...any) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, c.baseURL)
	for _, seg := range segments {
		parts = append(parts, fmt.Sprint(seg))
	}

	u := strings.Join(parts, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// ResolveMarketplace возвращает provided, если он задан, иначе маркетплейс
// клиента. Результат обязан быть допустимым значением.
func (c *BaseClient[S]) ResolveMarketplace(provided Marketplace) (Marketplace, error) {
	resolved := provided
	if resolved == "" {
		resolved = c.marketplace
	}
	if !resolved.Valid() {
		return "", ErrUnresolvableMarketplace
	}
	return resolved, nil
}

// RaiseForStatus превращает ответ в *HTTPStatusError. Никогда не возвращает nil.
//
// Тело ответа читается и закрывается. Для успешного статуса (функция для
// него не предназначена) возвращается ошибка с общим сообщением.
func (c *BaseClient[S]) RaiseForStatus(resp *http.Response) error {
	return raiseForStatus(resp)
}

func raiseForStatus(resp *http.Response) error {
	if resp == nil {
		return &HTTPStatusError{Message: defaultStatusMessage}
	}

	var raw []byte
	if resp.Body != nil {
		raw, _ = io.ReadAll(resp.Body)
		resp.Body.Close()
	}

	e := &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		RawBody:    raw,
		Message:    defaultStatusMessage,
	}
	if resp.Request != nil {
		e.Method = resp.Request.Method
		if resp.Request.URL != nil {
			e.URL = resp.Request.URL.String()
		}
	}

	line := statusLine(e.URL, resp.StatusCode, resp.Status)
	if line == "" {
		return e
	}

	parsed, text, err := describeBody(raw)
	e.Body = parsed
	e.BodyErr = err
	e.Message = line
	if text != "" {
		e.Message = fmt.Sprintf("%s - %s", line, text)
	}
	return e
}

// Do выполняет запрос к эндпоинту.
//
// body (если не nil) сериализуется в JSON, ответ с 2xx декодируется в dest
// (если не nil). Ответ с другим статусом возвращается как *HTTPStatusError.
func (c *BaseClient[S]) Do(ctx context.Context, method string, params url.Values, body any, dest any, segments ...any) error {
	reqURL := c.BuildURL(params, segments...)

	var reader io.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(bodyJSON)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for name, value := range c.BuildHeaders() {
		httpReq.Header.Set(name, value)
	}

	start := time.Now()
	resp, err := c.session.Do(httpReq)
	if err != nil {
		utils.Error("Jungle Scout request failed", "method", method, "url", reqURL, "error", err)
		return err
	}

	utils.Debug("Jungle Scout request",
		"method", method,
		"url", reqURL,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := raiseForStatus(resp)
		utils.Error("Jungle Scout API error", "status", resp.StatusCode, "error", statusErr)
		return statusErr
	}
	defer resp.Body.Close()

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}
	return nil
}

// Close освобождает сессию, если она реализует io.Closer.
func (c *BaseClient[S]) Close() error {
	if closer, ok := any(c.session).(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
