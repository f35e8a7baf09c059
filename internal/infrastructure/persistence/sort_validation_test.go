package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns ASC", "", "ASC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"desc lowercase returns DESC", "desc", "DESC"},
		{"descending longhand returns DESC", "descending", "DESC"},
		{"invalid value returns ASC", "INVALID", "ASC"},
		{"sql injection attempt returns ASC", "ASC; DROP TABLE products;--", "ASC"},
		{"whitespace only returns ASC", "   ", "ASC"},
		{"whitespace around desc returns DESC", "  desc  ", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns empty", "", ""},
		{"valid field returns field", "name", "name"},
		{"valid field quantity returns field", "quantity", "quantity"},
		{"invalid field returns empty", "supplier_rating", ""},
		{"case sensitive - uppercase invalid", "NAME", ""},
		{"whitespace only returns empty", "   ", ""},
		{"whitespace around valid field returns field", "  price  ", "price"},
		{"field with spaces injection returns empty", "name products", ""},
		{"field with quotes injection returns empty", "name'--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, ProductSortFields))
		})
	}
}

func TestProductSortFields(t *testing.T) {
	for _, field := range []string{"name", "sku", "category", "quantity", "price", "created_at"} {
		assert.True(t, ProductSortFields[field], "whitelist should contain %q", field)
	}
	assert.False(t, ProductSortFields["id"])
	assert.False(t, ProductSortFields["status"])
}

func TestSortFieldInjectionPayloads(t *testing.T) {
	payloads := []string{
		"name; DROP TABLE products;--",
		"name' OR '1'='1",
		"name\"; DROP TABLE products;--",
		"name UNION SELECT * FROM products",
		"name ORDER BY 1",
		"name, (SELECT sku FROM products)",
		"CASE WHEN 1=1 THEN name ELSE sku END",
		"name/**/;DROP TABLE products",
		"name\n; DROP TABLE products",
		"name\t; DROP TABLE products",
		"' OR ''='",
	}

	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			assert.Equal(t, "", ValidateSortField(payload, ProductSortFields))
			assert.Equal(t, "ASC", ValidateSortOrder(payload))
		})
	}
}
