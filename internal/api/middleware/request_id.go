package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey ключ контекста с ID запроса
const requestIDKey contextKey = "requestID"

// requestIDHeader заголовок с ID запроса; генерируется, если клиент не передал свой
const requestIDHeader = "X-Request-ID"

// RequestID проставляет каждому запросу уникальный идентификатор
// и возвращает его клиенту в заголовке ответа
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext возвращает ID запроса, положенный RequestID middleware
func RequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}
