package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// maxMicroLoanAmount keeps the product inside microfinance territory.
const maxMicroLoanAmount = 50000.0

// ValidateEntityID validates entity/applicant ID format
func ValidateEntityID(id string) error {
	if id == "" {
		return fmt.Errorf("entity ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, id)
	if !matched {
		return fmt.Errorf("invalid entity ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// ValidateEntityKind checks the entity kind against the allowed list
func ValidateEntityKind(kind string) error {
	if kind == "" {
		return nil // Optional field, defaults to company
	}
	allowed := map[string]bool{
		"company":    true,
		"individual": true,
	}
	if !allowed[strings.ToLower(kind)] {
		return fmt.Errorf("invalid entity kind: %s (allowed: company, individual)", kind)
	}
	return nil
}

// ValidateRiskTolerance checks the tolerance against the allowed list
func ValidateRiskTolerance(tolerance string) error {
	if tolerance == "" {
		return nil // Optional field, defaults to moderate
	}
	allowed := map[string]bool{
		"conservative": true,
		"moderate":     true,
		"aggressive":   true,
	}
	if !allowed[strings.ToLower(tolerance)] {
		return fmt.Errorf("invalid risk tolerance: %s (allowed: conservative, moderate, aggressive)", tolerance)
	}
	return nil
}

// ValidateCapital validates investment capital
func ValidateCapital(capital float64) error {
	if capital <= 0 {
		return fmt.Errorf("capital must be positive")
	}
	return nil
}

// ValidateLoanAmount validates micro-loan amounts
func ValidateLoanAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("loan amount must be positive")
	}
	if amount > maxMicroLoanAmount {
		return fmt.Errorf("loan amount exceeds micro-loan maximum of %.0f", maxMicroLoanAmount)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidatePage validates pagination page number
func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}
