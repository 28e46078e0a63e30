package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<script>alert('x')</script>", "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;"},
		{`a & b "c"`, "a &amp; b &quot;c&quot;"},
		{"&amp;", "&amp;amp;"},
		{"Tiếng Việt", "Tiếng Việt"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeHTML(tt.input))
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Hello", SanitizeInput("<Hello>"))
	assert.NotContains(t, SanitizeInput("onclick=alert()"), "onclick=")
	assert.Equal(t, "alert()", SanitizeInput("onclick=alert()"))
	assert.Equal(t, "alert(1)", SanitizeInput("JavaScript:alert(1)"))
	assert.Equal(t, "img src=x  /", SanitizeInput("<img src=x ONERROR= />"))
	assert.Equal(t, "Nguyễn Văn An", SanitizeInput("  Nguyễn Văn An  "))
	assert.Equal(t, "", SanitizeInput(""))
}

func TestSanitizeInput_IsSinglePass(t *testing.T) {
	// Replacements run once, so nested input survives.
	assert.Equal(t, "javascript:x", SanitizeInput("javajavascript:script:x"))
}

func TestNormalizeVietnamese(t *testing.T) {
	assert.Equal(t, "nguyen van an", NormalizeVietnamese("  Nguyễn Văn An "))
	assert.Equal(t, "ha noi", NormalizeVietnamese("Hà Nội"))
	assert.Equal(t, "đa nang", NormalizeVietnamese("Đà Nẵng"))
	assert.Equal(t, "", NormalizeVietnamese(""))
}

func TestSanitizeSheetCell(t *testing.T) {
	assert.Equal(t, "'=SUM(A1:A9)", SanitizeSheetCell("=SUM(A1:A9)"))
	assert.Equal(t, "'+1", SanitizeSheetCell("+1"))
	assert.Equal(t, "'-1", SanitizeSheetCell("-1"))
	assert.Equal(t, "'@x", SanitizeSheetCell("@x"))
	assert.Equal(t, "Lớp 3A", SanitizeSheetCell("Lớp 3A"))
	assert.Equal(t, "", SanitizeSheetCell(""))
	assert.Equal(t, "''=1", SanitizeSheetCell("'=1"))
	assert.Equal(t, "''", SanitizeSheetCell("'"))
}

func TestUnsanitizeSheetCell(t *testing.T) {
	for _, v := range []string{"=SUM(A1:A9)", "+1", "-1", "@x", "Lớp 3A", "", "'quoted", "'=1", "'+84 90", "'-", "''@x", "'"} {
		assert.Equal(t, v, UnsanitizeSheetCell(SanitizeSheetCell(v)), v)
	}
	assert.Equal(t, "'", UnsanitizeSheetCell("'"))
}
