package models

// ProbeResult представляет результат опроса одного эндпоинта.
// Для транспортных ошибок заполняется только Error, статус код отсутствует.
// Для полученных HTTP-ответов заполняются StatusCode, FinalURL и Preview.
type ProbeResult struct {
	URL        string `json:"url"`
	FinalURL   string `json:"final_url,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	LatencyMS  int64  `json:"latency_ms"`
	Attempts   int    `json:"attempts"`
	Preview    string `json:"preview,omitempty"`
	Error      string `json:"error,omitempty"`
}

// OK сообщает, получен ли успешный HTTP-ответ (2xx).
func (r ProbeResult) OK() bool {
	return r.Error == "" && r.StatusCode >= 200 && r.StatusCode < 300
}

// ProbeSummary содержит агрегированные показатели по всему отчету.
type ProbeSummary struct {
	Total        int   `json:"total"`
	OK           int   `json:"ok"`
	Failed       int   `json:"failed"`
	AvgLatencyMS int64 `json:"avg_latency_ms"`
	ElapsedMS    int64 `json:"elapsed_ms"`
}

// ProbeReport представляет полный отчет об опросе списка эндпоинтов.
// Результаты идут в порядке входного списка.
type ProbeReport struct {
	Results []ProbeResult `json:"results"`
	Summary ProbeSummary  `json:"summary"`
}
