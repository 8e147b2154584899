package junglescout

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// HTTPClient интерфейс для выполнения HTTP запросов.
//
// Позволяет мокировать транспорт в тестах.
// Стандартный *http.Client реализует этот интерфейс.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session держит аутентифицированное состояние транспорта одного клиента.
//
// Сессия создаётся фабрикой ровно один раз и логинится ровно один раз
// в конструкторе BaseClient.
type Session interface {
	Login(ctx context.Context, creds Credentials, apiType ApiType) error
	Do(req *http.Request) (*http.Response, error)
}

// SessionFactory создаёт новую сессию для клиента.
type SessionFactory[S Session] func() (S, error)

// Заголовки, которые сессия проставляет после логина.
const (
	headerAuthorization = "Authorization"
	headerAPIType       = "X_API_Type"
)

// HTTPSession — сессия по умолчанию поверх HTTPClient.
//
// Login не ходит в сеть: API Jungle Scout аутентифицирует каждый запрос
// заголовками Authorization и X_API_Type, сессия их запоминает.
type HTTPSession struct {
	httpClient HTTPClient

	mu       sync.RWMutex
	headers  http.Header
	loggedIn bool
	closed   bool
}

var _ Session = (*HTTPSession)(nil)

// NewHTTPSession создаёт сессию. nil httpClient заменяется на http.DefaultClient.
func NewHTTPSession(httpClient HTTPClient) *HTTPSession {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSession{
		httpClient: httpClient,
		headers:    make(http.Header),
	}
}

// HTTPSessionFactory возвращает фабрику для BaseClient.
func HTTPSessionFactory(httpClient HTTPClient) SessionFactory[*HTTPSession] {
	return func() (*HTTPSession, error) {
		return NewHTTPSession(httpClient), nil
	}
}

// Login запоминает заголовки аутентификации.
func (s *HTTPSession) Login(ctx context.Context, creds Credentials, apiType ApiType) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if creds.APIKeyName == "" || creds.APIKey == "" {
		return ErrMissingCredentials
	}
	if !apiType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAPIType, apiType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	// X_API_Type не каноничен для net/http, поэтому пишем в map напрямую
	s.headers[headerAuthorization] = []string{creds.authorization()}
	s.headers[headerAPIType] = []string{string(apiType)}
	s.loggedIn = true
	return nil
}

// Do отправляет запрос, добавляя заголовки аутентификации.
// Заголовки, уже выставленные на запросе, не перетираются.
func (s *HTTPSession) Do(req *http.Request) (*http.Response, error) {
	s.mu.RLock()
	closed, loggedIn := s.closed, s.loggedIn
	headers := s.headers.Clone()
	s.mu.RUnlock()

	if closed {
		return nil, ErrSessionClosed
	}
	if !loggedIn {
		return nil, ErrNotLoggedIn
	}

	if req.Header == nil {
		req.Header = make(http.Header)
	}
	for name, values := range headers {
		if len(req.Header[name]) > 0 {
			continue
		}
		req.Header[name] = values
	}

	return s.httpClient.Do(req)
}

// LoggedIn сообщает был ли выполнен Login.
func (s *HTTPSession) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn && !s.closed
}

// Close забывает учётные данные и закрывает простаивающие соединения.
// Повторный вызов безопасен.
func (s *HTTPSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.loggedIn = false
	s.headers = make(http.Header)

	if c, ok := s.httpClient.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
	return nil
}
