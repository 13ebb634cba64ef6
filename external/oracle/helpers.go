package oracle

import "net/http"

const defaultMaxTokens = 1000

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviate(raw []byte) string {
	const limit = 512
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
