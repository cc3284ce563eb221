package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductKind tags which detail set a Product carries
type ProductKind string

const (
	KindBook         ProductKind = "book"
	KindMagazine     ProductKind = "magazine"
	KindSchoolSupply ProductKind = "school_supply"
)

// Fixed category labels per kind
const (
	CategoryBook         = "libro"
	CategoryMagazine     = "revista"
	CategorySchoolSupply = "util escolar"
)

// IsValid returns true if the kind is known
func (k ProductKind) IsValid() bool {
	switch k {
	case KindBook, KindMagazine, KindSchoolSupply:
		return true
	}
	return false
}

func (k ProductKind) String() string {
	return string(k)
}

// Category returns the fixed category label for the kind
func (k ProductKind) Category() string {
	switch k {
	case KindBook:
		return CategoryBook
	case KindMagazine:
		return CategoryMagazine
	case KindSchoolSupply:
		return CategorySchoolSupply
	}
	return ""
}

// BookDetails are the attributes only books have
type BookDetails struct {
	ISBN           string `json:"isbn"`
	Author         string `json:"author"`
	PublisherHouse string `json:"publisher_house"`
	LiteraryGenre  string `json:"literary_genre"`
}

// MagazineDetails are the attributes only magazines have
type MagazineDetails struct {
	ISSN        string    `json:"issn"`
	Date        time.Time `json:"date"`
	Number      int       `json:"number"`
	IssueNumber int       `json:"issue_number"`
}

// SchoolSupplyDetails are the attributes only school supplies have
type SchoolSupplyDetails struct {
	Brand       string `json:"brand"`
	Description string `json:"description"`
}

// Product is a stocked item sold by the store. Exactly one of Book,
// Magazine or SchoolSupply is set, matching Kind.
type Product struct {
	shared.Aggregate
	Kind     ProductKind
	Name     string
	Category string
	Price    decimal.Decimal
	Section  string
	Stock    int

	Book         *BookDetails
	Magazine     *MagazineDetails
	SchoolSupply *SchoolSupplyDetails
}

// BookInput holds the fields needed to build a book
type BookInput struct {
	Name           string
	Price          decimal.Decimal
	Section        string
	Stock          int
	ISBN           string
	Author         string
	PublisherHouse string
	LiteraryGenre  string
}

// MagazineInput holds the fields needed to build a magazine
type MagazineInput struct {
	Name        string
	Price       decimal.Decimal
	Section     string
	Stock       int
	ISSN        string
	Date        time.Time
	Number      int
	IssueNumber int
}

// SchoolSupplyInput holds the fields needed to build a school supply
type SchoolSupplyInput struct {
	Name        string
	Price       decimal.Decimal
	Section     string
	Stock       int
	Brand       string
	Description string
}

// NewBook creates a book
func NewBook(tenantID uuid.UUID, in BookInput) (*Product, error) {
	if blank(in.Name) || blank(in.ISBN) || blank(in.Author) {
		return nil, shared.NewValidationError("Book must have all required properties")
	}
	if err := validatePriceAndStock(in.Price, in.Stock); err != nil {
		return nil, err
	}

	p := newProduct(tenantID, KindBook, in.Name, in.Price, in.Section, in.Stock)
	p.Book = &BookDetails{
		ISBN:           strings.TrimSpace(in.ISBN),
		Author:         strings.TrimSpace(in.Author),
		PublisherHouse: in.PublisherHouse,
		LiteraryGenre:  in.LiteraryGenre,
	}
	p.Record(NewProductCreatedEvent(p))
	return p, nil
}

// NewMagazine creates a magazine
func NewMagazine(tenantID uuid.UUID, in MagazineInput) (*Product, error) {
	if blank(in.Name) || blank(in.ISSN) {
		return nil, shared.NewValidationError("Magazine must have all required properties")
	}
	if err := validatePriceAndStock(in.Price, in.Stock); err != nil {
		return nil, err
	}
	if in.Number < 1 {
		return nil, shared.NewValidationError("Number must be a positive number")
	}
	if in.IssueNumber < 1 {
		return nil, shared.NewValidationError("Issue number must be a positive number")
	}
	if in.Date.IsZero() {
		return nil, shared.NewValidationError("Date must be a valid Date object")
	}

	p := newProduct(tenantID, KindMagazine, in.Name, in.Price, in.Section, in.Stock)
	p.Magazine = &MagazineDetails{
		ISSN:        strings.TrimSpace(in.ISSN),
		Date:        in.Date,
		Number:      in.Number,
		IssueNumber: in.IssueNumber,
	}
	p.Record(NewProductCreatedEvent(p))
	return p, nil
}

// NewSchoolSupply creates a school supply
func NewSchoolSupply(tenantID uuid.UUID, in SchoolSupplyInput) (*Product, error) {
	if blank(in.Name) || blank(in.Brand) {
		return nil, shared.NewValidationError("School supply must have all required properties")
	}
	if err := validatePriceAndStock(in.Price, in.Stock); err != nil {
		return nil, err
	}

	p := newProduct(tenantID, KindSchoolSupply, in.Name, in.Price, in.Section, in.Stock)
	p.SchoolSupply = &SchoolSupplyDetails{
		Brand:       strings.TrimSpace(in.Brand),
		Description: in.Description,
	}
	p.Record(NewProductCreatedEvent(p))
	return p, nil
}

func newProduct(tenantID uuid.UUID, kind ProductKind, name string, price decimal.Decimal, section string, stock int) *Product {
	return &Product{
		Aggregate: shared.NewAggregate(tenantID),
		Kind:      kind,
		Name:      strings.TrimSpace(name),
		Category:  kind.Category(),
		Price:     price,
		Section:   section,
		Stock:     stock,
	}
}

// Revise replaces the product's attributes with those of next, a candidate
// built through one of the constructors. Identity and tenant are kept.
func (p *Product) Revise(next *Product) error {
	if next == nil || next.Kind != p.Kind {
		return shared.NewValidationError("Product kind cannot change")
	}

	p.Name = next.Name
	p.Price = next.Price
	p.Section = next.Section
	p.Stock = next.Stock
	p.Book = next.Book
	p.Magazine = next.Magazine
	p.SchoolSupply = next.SchoolSupply
	p.MarkModified()

	p.Record(NewProductUpdatedEvent(p))
	return nil
}

// AdjustStock applies a signed delta to the quantity on hand. The product
// is left untouched when the result would be negative.
func (p *Product) AdjustStock(delta int, reason string) error {
	newStock, err := UpdateStock(p.Stock, delta)
	if err != nil {
		return err
	}

	before := p.Stock
	p.Stock = newStock
	p.MarkModified()

	p.Record(NewStockAdjustedEvent(p, before, delta, reason))
	return nil
}

// MarkDeleted records the deletion event; the repository removes the row.
func (p *Product) MarkDeleted() {
	p.Record(NewProductDeletedEvent(p))
}

func validatePriceAndStock(price decimal.Decimal, stock int) error {
	if price.IsNegative() {
		return shared.NewValidationError("Price must be a positive number")
	}
	if stock < 0 {
		return shared.NewValidationError("Stock must be a positive number")
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
