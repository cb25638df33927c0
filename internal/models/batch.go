package models

// BatchRequestEntry представляет одну запись в запросе на пакетный опрос
type BatchRequestEntry struct {
	CorrelationID string `json:"correlation_id"`
	URL           string `json:"url"`
}

// BatchResponseEntry представляет одну запись в ответе на пакетный опрос
type BatchResponseEntry struct {
	CorrelationID string      `json:"correlation_id"`
	Result        ProbeResult `json:"result"`
}
