package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	catalogapp "github.com/libreria/backend/internal/application/catalog"
	partnerapp "github.com/libreria/backend/internal/application/partner"
	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/domain/shared"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document loaded by the seed command
type Fixture struct {
	Tenant    string            `yaml:"tenant"`
	Suppliers []SupplierFixture `yaml:"suppliers"`
	Products  []ProductFixture  `yaml:"products"`
}

// SupplierFixture mirrors the supplier create payload
type SupplierFixture struct {
	Name        string              `yaml:"name"`
	PhoneNumber string              `yaml:"phoneNumber"`
	Email       string              `yaml:"email"`
	Category    string              `yaml:"category"`
	Catalog     []shared.Attributes `yaml:"catalog"`
}

// ProductFixture holds a kind plus the same camelCase fields the HTTP API
// accepts for that kind.
type ProductFixture struct {
	Kind   string         `yaml:"kind"`
	Fields map[string]any `yaml:",inline"`
}

// LoadFixture reads and parses a fixture file
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture parses a fixture document and checks the product kinds
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, p := range f.Products {
		if !catalog.ProductKind(p.Kind).IsValid() {
			return nil, fmt.Errorf("product %d: unknown kind %q", i, p.Kind)
		}
	}
	return &f, nil
}

// Request converts the fixture into the service request. It goes through
// JSON so that the field names match the HTTP payload exactly.
func (p ProductFixture) Request() (catalogapp.ProductRequest, error) {
	var req catalogapp.ProductRequest
	fields := make(map[string]any, len(p.Fields))
	for k, v := range p.Fields {
		// Unquoted YAML dates arrive as timestamps.
		if t, ok := v.(time.Time); ok {
			v = t.Format(shared.DateLayout)
		}
		fields[k] = v
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return req, fmt.Errorf("encode product fields: %w", err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("decode product fields: %w", err)
	}
	return req, nil
}

// Request converts the fixture into the service request
func (s SupplierFixture) Request() partnerapp.SupplierRequest {
	return partnerapp.SupplierRequest{
		Name:        optional(s.Name),
		PhoneNumber: optional(s.PhoneNumber),
		Email:       optional(s.Email),
		Category:    optional(s.Category),
		Catalog:     s.Catalog,
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// FakeProducts generates n products spread over the three kinds
func FakeProducts(f *gofakeit.Faker, n int) []ProductFixture {
	kinds := []catalog.ProductKind{catalog.KindBook, catalog.KindMagazine, catalog.KindSchoolSupply}
	out := make([]ProductFixture, 0, n)
	for i := 0; i < n; i++ {
		kind := kinds[i%len(kinds)]
		fields := map[string]any{
			"price": fmt.Sprintf("%.2f", f.Price(1, 80)),
			"stock": f.IntRange(0, 50),
		}
		switch kind {
		case catalog.KindBook:
			fields["name"] = f.BookTitle()
			fields["section"] = "Books"
			fields["isbn"] = f.Numerify("978-#-####-####-#")
			fields["author"] = f.BookAuthor()
			fields["publisherHouse"] = f.Company()
			fields["literaryGenre"] = f.BookGenre()
		case catalog.KindMagazine:
			fields["name"] = f.Company() + " Monthly"
			fields["section"] = "Magazines"
			fields["issn"] = f.Numerify("####-####")
			fields["date"] = f.PastDate().Format(shared.DateLayout)
			fields["number"] = f.IntRange(1, 12)
			fields["issueNumber"] = f.IntRange(1, 400)
		case catalog.KindSchoolSupply:
			fields["name"] = f.ProductName()
			fields["section"] = "School supplies"
			fields["brand"] = f.Company()
			fields["description"] = f.ProductDescription()
		}
		out = append(out, ProductFixture{Kind: string(kind), Fields: fields})
	}
	return out
}
