package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// ParseInt64 converts a path/query parameter to int64, 0 on failure
func ParseInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

// GenerateReceiptNumber creates a unique receipt number for a sale
func GenerateReceiptNumber() string {
	now := time.Now()

	// Format: SALE-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("SALE-%s-%s-%s", datePart, timePart, randomPart)
}
