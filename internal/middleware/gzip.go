package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// GzipMiddleware обрабатывает сжатие и распаковку gzip
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Проверяем, поддерживает ли клиент gzip
		supportsGzip := strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")

		// Проверяем, сжат ли входящий запрос
		isGzipped := strings.Contains(r.Header.Get("Content-Encoding"), "gzip")

		// Если запрос сжат, распаковываем его
		if isGzipped {
			if r.Body == nil {
				http.Error(w, "Empty request body", http.StatusBadRequest)
				return
			}

			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			defer gz.Close()
			r.Body = gz

			// Сжатый текстовый список эндпоинтов приходит как application/x-gzip
			if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-gzip") {
				r.Header.Set("Content-Type", "text/plain")
			}
		}

		// Если клиент поддерживает gzip, сжимаем ответ
		if supportsGzip {
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			defer func() {
				if err := gz.Close(); err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
			}()

			next.ServeHTTP(gzipResponseWriter{
				Writer:         gz,
				ResponseWriter: w,
			}, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// gzipResponseWriter оборачивает http.ResponseWriter для сжатия ответа
type gzipResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

// Write записывает данные в сжатый поток
func (w gzipResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}
