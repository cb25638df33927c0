package service

import "errors"

// ErrBatchTooLarge возвращается, когда размер пакета эндпоинтов превышает лимит
var ErrBatchTooLarge = errors.New("batch is too large")

// ErrNoUserID возвращается, когда в контексте запроса нет ID пользователя
var ErrNoUserID = errors.New("no user ID in context")

// ErrNoReport возвращается, когда для пользователя нет сохраненного отчета
var ErrNoReport = errors.New("report not found")
