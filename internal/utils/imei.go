package utils

import (
	"fmt"
	"strings"
)

// CleanIMEI strips whitespace so "356938 035643 809" and "356938035643809"
// are the same device.
func CleanIMEI(imei string) string {
	return strings.ReplaceAll(strings.TrimSpace(imei), " ", "")
}

// ValidateIMEI checks format and checksum. 15-digit IMEIs must pass the Luhn
// check; 14-digit ones (no check digit) are accepted as-is.
func ValidateIMEI(imei string) error {
	if imei == "" {
		return fmt.Errorf("IMEI is required")
	}

	for _, r := range imei {
		if r < '0' || r > '9' {
			return fmt.Errorf("IMEI must contain only digits")
		}
	}

	if len(imei) != 15 && len(imei) != 14 {
		return fmt.Errorf("IMEI must be 15 digits (got %d)", len(imei))
	}

	if len(imei) == 14 {
		return nil
	}

	if !luhnCheck(imei) {
		return fmt.Errorf("invalid IMEI checksum")
	}
	return nil
}

// luhnCheck is the Modulus 10 checksum used by IMEIs (and card numbers).
func luhnCheck(num string) bool {
	sum := 0
	double := false
	for i := len(num) - 1; i >= 0; i-- {
		digit := int(num[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// FormatIMEI groups a 15-digit IMEI for display: 123456 789012 345.
func FormatIMEI(imei string) string {
	cleaned := CleanIMEI(imei)
	if len(cleaned) == 15 {
		return cleaned[:6] + " " + cleaned[6:12] + " " + cleaned[12:]
	}
	return cleaned
}
