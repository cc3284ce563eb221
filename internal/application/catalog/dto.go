package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductRequest carries the fields of a book, magazine or school supply.
// Every field is optional: on create an absent field is left empty, on
// update it keeps the stored value. Fields of other kinds are ignored.
type ProductRequest struct {
	Name    *string          `json:"name" binding:"omitempty,max=200"`
	Price   *decimal.Decimal `json:"price"`
	Section *string          `json:"section" binding:"omitempty,max=100"`
	Stock   *int             `json:"stock"`

	ISBN           *string `json:"isbn" binding:"omitempty,max=20"`
	Author         *string `json:"author" binding:"omitempty,max=200"`
	PublisherHouse *string `json:"publisherHouse" binding:"omitempty,max=200"`
	LiteraryGenre  *string `json:"literaryGenre" binding:"omitempty,max=100"`

	ISSN        *string `json:"issn" binding:"omitempty,max=20"`
	Date        *string `json:"date"`
	Number      *int    `json:"number"`
	IssueNumber *int    `json:"issueNumber"`

	Brand       *string `json:"brand" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// StockRequest adjusts stock by a signed quantity. Quantity is left untyped
// so that non-numeric input can be reported as such.
type StockRequest struct {
	Quantity any    `json:"quantity"`
	Reason   string `json:"reason" binding:"max=200"`
}

// ProductListFilter holds list query parameters
type ProductListFilter struct {
	Search   string `form:"search"`
	Section  string `form:"section"`
	InStock  *bool  `form:"in_stock"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BookFields are present in responses for books
type BookFields struct {
	ISBN           string `json:"isbn"`
	Author         string `json:"author"`
	PublisherHouse string `json:"publisherHouse"`
	LiteraryGenre  string `json:"literaryGenre"`
}

// MagazineFields are present in responses for magazines
type MagazineFields struct {
	ISSN        string `json:"issn"`
	Date        string `json:"date"`
	Number      int    `json:"number"`
	IssueNumber int    `json:"issueNumber"`
}

// SchoolSupplyFields are present in responses for school supplies
type SchoolSupplyFields struct {
	Brand       string `json:"brand"`
	Description string `json:"description"`
}

// ProductResponse represents a product in API responses. Only the detail
// block matching Kind is set.
type ProductResponse struct {
	ID       uuid.UUID       `json:"id"`
	Kind     string          `json:"kind"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Section  string          `json:"section"`
	Stock    int             `json:"stock"`

	*BookFields
	*MagazineFields
	*SchoolSupplyFields

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID,
		Kind:      p.Kind.String(),
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Section:   p.Section,
		Stock:     p.Stock,
		Version:   p.Version,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	switch {
	case p.Book != nil:
		resp.BookFields = &BookFields{
			ISBN:           p.Book.ISBN,
			Author:         p.Book.Author,
			PublisherHouse: p.Book.PublisherHouse,
			LiteraryGenre:  p.Book.LiteraryGenre,
		}
	case p.Magazine != nil:
		resp.MagazineFields = &MagazineFields{
			ISSN:        p.Magazine.ISSN,
			Date:        p.Magazine.Date.Format(shared.DateLayout),
			Number:      p.Magazine.Number,
			IssueNumber: p.Magazine.IssueNumber,
		}
	case p.SchoolSupply != nil:
		resp.SchoolSupplyFields = &SchoolSupplyFields{
			Brand:       p.SchoolSupply.Brand,
			Description: p.SchoolSupply.Description,
		}
	}
	return resp
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// build constructs a candidate product of the given kind. Values come from
// base when present and are overridden by the request.
func (r ProductRequest) build(tenantID uuid.UUID, kind catalog.ProductKind, base *catalog.Product) (*catalog.Product, error) {
	var name, section string
	var price decimal.Decimal
	var stock int
	if base != nil {
		name, price, section, stock = base.Name, base.Price, base.Section, base.Stock
	}
	override(&name, r.Name)
	override(&section, r.Section)
	override(&stock, r.Stock)
	override(&price, r.Price)

	switch kind {
	case catalog.KindBook:
		in := catalog.BookInput{Name: name, Price: price, Section: section, Stock: stock}
		if base != nil && base.Book != nil {
			in.ISBN, in.Author = base.Book.ISBN, base.Book.Author
			in.PublisherHouse, in.LiteraryGenre = base.Book.PublisherHouse, base.Book.LiteraryGenre
		}
		override(&in.ISBN, r.ISBN)
		override(&in.Author, r.Author)
		override(&in.PublisherHouse, r.PublisherHouse)
		override(&in.LiteraryGenre, r.LiteraryGenre)
		return catalog.NewBook(tenantID, in)

	case catalog.KindMagazine:
		in := catalog.MagazineInput{Name: name, Price: price, Section: section, Stock: stock}
		if base != nil && base.Magazine != nil {
			in.ISSN, in.Date = base.Magazine.ISSN, base.Magazine.Date
			in.Number, in.IssueNumber = base.Magazine.Number, base.Magazine.IssueNumber
		}
		override(&in.ISSN, r.ISSN)
		override(&in.Number, r.Number)
		override(&in.IssueNumber, r.IssueNumber)
		if r.Date != nil {
			d, err := shared.ParseDate(*r.Date)
			if err != nil {
				return nil, err
			}
			in.Date = d
		}
		return catalog.NewMagazine(tenantID, in)

	case catalog.KindSchoolSupply:
		in := catalog.SchoolSupplyInput{Name: name, Price: price, Section: section, Stock: stock}
		if base != nil && base.SchoolSupply != nil {
			in.Brand, in.Description = base.SchoolSupply.Brand, base.SchoolSupply.Description
		}
		override(&in.Brand, r.Brand)
		override(&in.Description, r.Description)
		return catalog.NewSchoolSupply(tenantID, in)
	}
	return nil, shared.NewValidationError("Unknown product kind")
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
