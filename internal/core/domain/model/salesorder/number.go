package salesorder

import "fmt"

const NumberPrefix = "SO-"

// FormatNumber renders the n-th allocated order number, e.g. SO-000042.
func FormatNumber(n int64) string {
	return fmt.Sprintf("%s%06d", NumberPrefix, n)
}
