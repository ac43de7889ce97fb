package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone = regexp.MustCompile(`^[0-9+()\- ]{5,20}$`)
	reCode  = regexp.MustCompile(`^[A-Za-z0-9]{4,16}$`)

	rePropType   = regexp.MustCompile(`^(VILLA|APARTMENT|PENTHOUSE|ESTATE|COMMERCIAL)$`)
	rePropStatus = regexp.MustCompile(`^(FOR_SALE|FOR_RENT|SOLD)$`)
	reLeadStatus = regexp.MustCompile(`^(NEW|CONTACTED|QUALIFIED|CLOSED|LOST)$`)
	reLeadType   = regexp.MustCompile(`^(GENERAL_INQUIRY|VIEWING_REQUEST|OFFER)$`)
	rePostStatus = regexp.MustCompile(`^(PUBLISHED|DRAFT)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a resource identifier (property/post/lead/sale ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true // optional on public forms
	}
	return s, rePhone.MatchString(s)
}

// ReferralCode validates /r/:code path segments.
func ReferralCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reCode.MatchString(s)
}

func PropertyType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && rePropType.MatchString(s)
}

func PropertyStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && rePropStatus.MatchString(s)
}

func LeadStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reLeadStatus.MatchString(s)
}

func LeadType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reLeadType.MatchString(s)
}

func PostStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && rePostStatus.MatchString(s)
}

// Name validates a displayable person name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Message trims and caps free-text form bodies.
func Message(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 2000 {
		return "", false
	}
	return s, true
}

// Amount parses a non-negative whole currency amount.
func Amount(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Money parses a non-negative decimal amount (payouts, commission rates).
func Money(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

// Count parses a small non-negative integer (bedrooms, bathrooms).
func Count(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Percentage parses a commission rate and rejects values outside [0,100].
func Percentage(s string) (float64, bool) {
	f, ok := Money(s)
	if !ok || f > 100 {
		return 0, false
	}
	return f, true
}

func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 64
}
