package service_test

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/InQaaaaGit/fanout.git/internal/config"
	"github.com/InQaaaaGit/fanout.git/internal/service"
	"go.uber.org/zap"
)

// ExampleProbeService_ProbeURLs демонстрирует опрос списка эндпоинтов.
func ExampleProbeService_ProbeURLs() {
	// Тестовый эндпоинт, отвечающий 200 OK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "pong")
	}))
	defer server.Close()

	// Создаем конфигурацию для примера
	cfg := &config.Config{
		RequestTimeout:   5 * time.Second,
		MaxConcurrency:   4,
		RetryBackoff:     10 * time.Millisecond,
		BodyPreviewLimit: 500,
		MaxBatchSize:     100,
	}

	// Создаем логгер (отключаем логи для примера)
	logger := zap.NewNop()

	svc, err := service.NewProbeService(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	// Опрашиваем два эндпоинта параллельно
	report, err := svc.ProbeURLs(context.Background(), []string{server.URL, server.URL + "/health"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Results: %d\n", len(report.Results))
	fmt.Printf("OK: %d\n", report.Summary.OK)
	fmt.Printf("First preview: %s\n", report.Results[0].Preview)

	// Output:
	// Results: 2
	// OK: 2
	// First preview: pong
}

// ExampleProbeService_ProbeURLs_errors демонстрирует, что ошибка одного
// эндпоинта не прерывает опрос остальных.
func ExampleProbeService_ProbeURLs_errors() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "pong")
	}))
	defer server.Close()

	cfg := &config.Config{
		RequestTimeout:   5 * time.Second,
		MaxConcurrency:   4,
		RetryBackoff:     10 * time.Millisecond,
		BodyPreviewLimit: 500,
		MaxBatchSize:     100,
	}

	svc, err := service.NewProbeService(cfg, zap.NewNop())
	if err != nil {
		log.Fatal(err)
	}

	report, err := svc.ProbeURLs(context.Background(), []string{"not-a-url", server.URL})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Results: %d\n", len(report.Results))
	fmt.Printf("First error: %s\n", report.Results[0].Error)
	fmt.Printf("Second status: %d\n", report.Results[1].StatusCode)

	// Output:
	// Results: 2
	// First error: invalid URL
	// Second status: 200
}
