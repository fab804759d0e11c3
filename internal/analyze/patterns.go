package analyze

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	uuidRe  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// dateLayouts are tried in order; the first layout that parses a value is
// that value's vote. The order puts unambiguous ISO forms first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006 01 02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
	"2 Jan 2006",
}

// IsEmail reports whether the value looks like an email address.
func IsEmail(v string) bool {
	return emailRe.MatchString(v)
}

// IsUUID reports whether the value is a canonical UUID string.
func IsUUID(v string) bool {
	return uuidRe.MatchString(v)
}

// IsPhone reports whether the value looks like a phone number: an optional
// leading +, then digits mixed with common grouping characters.
func IsPhone(v string) bool {
	digits := 0
	for i, r := range v {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+':
			if i != 0 {
				return false
			}
		case r == ' ' || r == '(' || r == ')' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

// DateLayout returns the first layout that parses the value, or "".
func DateLayout(v string) string {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return layout
		}
	}
	return ""
}

// IsInteger reports whether the value parses as an integer. Group separators
// ("1,234") are tolerated.
func IsInteger(v string) bool {
	_, err := strconv.ParseInt(stripSeparators(v), 10, 64)
	return err == nil
}

// IsFloat reports whether the value parses as a float. Integers qualify.
func IsFloat(v string) bool {
	_, err := strconv.ParseFloat(stripSeparators(v), 64)
	return err == nil
}

// IsBoolean reports whether the value is a recognizable boolean literal.
// Bare 0/1 are deliberately excluded so integer columns do not vote boolean.
func IsBoolean(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false", "yes", "no", "y", "n":
		return true
	}
	return false
}

// HasGroupSeparators reports whether a numeric value uses "1,234" style
// thousands separators.
func HasGroupSeparators(v string) bool {
	return strings.Contains(v, ",") && IsFloat(v)
}

func stripSeparators(v string) string {
	return strings.ReplaceAll(strings.TrimSpace(v), ",", "")
}

// DetectCase classifies the casing convention of a single text value.
func DetectCase(v string) domain.CaseKind {
	hasUpper, hasLower := false, false
	for _, r := range v {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	switch {
	case !hasUpper && !hasLower:
		return domain.CaseNone
	case hasUpper && !hasLower:
		return domain.CaseUpper
	case hasLower && !hasUpper:
		return domain.CaseLower
	case isTitleCased(v):
		return domain.CaseTitle
	default:
		return domain.CaseMixed
	}
}

// isTitleCased reports whether every word starts with an uppercase letter
// followed by lowercase letters only.
func isTitleCased(v string) bool {
	words := strings.FieldsFunc(v, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		runes := []rune(w)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes[1:] {
			if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return true
}

// DominantCase returns the casing convention shared by the values, or
// CaseMixed when no single convention covers them all. Values without
// letters are ignored.
func DominantCase(values []string) domain.CaseKind {
	counts := map[domain.CaseKind]int{}
	considered := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		kind := DetectCase(v)
		if kind == domain.CaseNone {
			continue
		}
		counts[kind]++
		considered++
	}
	if considered == 0 {
		return domain.CaseNone
	}
	for _, kind := range []domain.CaseKind{domain.CaseUpper, domain.CaseLower, domain.CaseTitle} {
		if counts[kind] == considered {
			return kind
		}
	}
	return domain.CaseMixed
}
