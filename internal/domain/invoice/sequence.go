package invoice

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const invoiceNumberPrefix = "INV"

// FormatInvoiceNumber renders a sequence value as INV-0001
func FormatInvoiceNumber(seq int) string {
	return fmt.Sprintf("%s-%04d", invoiceNumberPrefix, seq)
}

// NextInvoiceNumber returns the number following last. An empty,
// unparseable or exhausted last number restarts the sequence at 1.
func NextInvoiceNumber(last string) string {
	parts := strings.SplitN(last, "-", 2)
	if len(parts) != 2 {
		return FormatInvoiceNumber(1)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 || n == math.MaxInt {
		return FormatInvoiceNumber(1)
	}
	return FormatInvoiceNumber(n + 1)
}
