package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

func TestIsEmail(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"alice@example.com", true},
		{"bob.smith+tag@corp.co.uk", true},
		{"no-at-sign.com", false},
		{"a@b", false},
		{"", false},
		{"spaces in@mail.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmail(tt.value))
		})
	}
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.False(t, IsUUID("6ba7b810-9dad-11d1-80b4"))
	assert.False(t, IsUUID("not-a-uuid"))
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("+964 770 123 4567"))
	assert.True(t, IsPhone("(020) 7946-0958"))
	assert.False(t, IsPhone("12345"), "too few digits")
	assert.False(t, IsPhone("hello"))
}

func TestDateLayout(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"2024-06-01", "2006-01-02"},
		{"2024/06/01", "2006/01/02"},
		{"15/06/2024", "02/01/2006"},
		{"Jan 2, 2024", "Jan 2, 2006"},
		{"not a date", ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, DateLayout(tt.value))
		})
	}
}

func TestIsIntegerAndFloat(t *testing.T) {
	assert.True(t, IsInteger("42"))
	assert.True(t, IsInteger("-7"))
	assert.True(t, IsInteger("1,234"), "group separators tolerated")
	assert.False(t, IsInteger("3.14"))
	assert.False(t, IsInteger("abc"))

	assert.True(t, IsFloat("3.14"))
	assert.True(t, IsFloat("42"))
	assert.True(t, IsFloat("1,234.56"))
	assert.False(t, IsFloat("1.2.3"))
}

func TestIsBoolean(t *testing.T) {
	for _, v := range []string{"true", "FALSE", "Yes", "no", "Y", "n"} {
		assert.True(t, IsBoolean(v), v)
	}
	for _, v := range []string{"1", "0", "maybe", ""} {
		assert.False(t, IsBoolean(v), v)
	}
}

func TestDetectCase(t *testing.T) {
	tests := []struct {
		value string
		want  domain.CaseKind
	}{
		{"HELLO WORLD", domain.CaseUpper},
		{"hello world", domain.CaseLower},
		{"Hello World", domain.CaseTitle},
		{"hELLo", domain.CaseMixed},
		{"12345", domain.CaseNone},
		{"John-Paul Smith", domain.CaseTitle},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCase(tt.value))
		})
	}
}

func TestDominantCase(t *testing.T) {
	assert.Equal(t, domain.CaseUpper, DominantCase([]string{"ACME", "GLOBEX", "INITECH"}))
	assert.Equal(t, domain.CaseTitle, DominantCase([]string{"John Doe", "Jane Roe"}))
	assert.Equal(t, domain.CaseMixed, DominantCase([]string{"ACME", "lowercase"}))
	assert.Equal(t, domain.CaseNone, DominantCase([]string{"123", "456"}))
	assert.Equal(t, domain.CaseNone, DominantCase(nil))
}
