package domain

import (
	"strconv"
	"strings"
	"time"
)

// ItemSummary is the list-card view of one vehicle in the catalog.
type ItemSummary struct {
	ID             string    `json:"id"`
	VIN            string    `json:"vin,omitempty"`
	Title          string    `json:"title"`
	Year           int       `json:"year"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	Trim           string    `json:"trim,omitempty"`
	Condition      string    `json:"condition"`
	BodyType       string    `json:"body_type,omitempty"`
	DriveType      string    `json:"drivetrain,omitempty"`
	Transmission   string    `json:"transmission,omitempty"`
	FuelType       string    `json:"fuel_type,omitempty"`
	ExteriorColor  string    `json:"exterior_color,omitempty"`
	InteriorColor  string    `json:"interior_color,omitempty"`
	Mileage        int       `json:"mileage"`
	Price          float64   `json:"price"`
	MonthlyPayment float64   `json:"monthly_payment,omitempty"`
	SellerType     string    `json:"seller_type,omitempty"`
	DealerID       string    `json:"dealer_id,omitempty"`
	DealerName     string    `json:"dealer_name,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	Images         []string  `json:"images,omitempty"`
	ListedAt       time.Time `json:"listed_at"`
}

// FacetValue returns the item's value for a list dimension and, for dealers,
// the stable identifier behind the display name. Mileage is bucketed
// separately via MileageBucketsFor.
func (it ItemSummary) FacetValue(dim FacetDimension) (name string, id string) {
	switch dim {
	case DimensionMake:
		return it.Make, ""
	case DimensionModel:
		return it.Model, ""
	case DimensionTrim:
		return it.Trim, ""
	case DimensionYear:
		if it.Year == 0 {
			return "", ""
		}
		return strconv.Itoa(it.Year), ""
	case DimensionCondition:
		return it.Condition, ""
	case DimensionBodyType:
		return it.BodyType, ""
	case DimensionDriveType:
		return it.DriveType, ""
	case DimensionTransmission:
		return it.Transmission, ""
	case DimensionFuelType:
		return it.FuelType, ""
	case DimensionExteriorColor:
		return it.ExteriorColor, ""
	case DimensionInteriorColor:
		return it.InteriorColor, ""
	case DimensionSellerType:
		return it.SellerType, ""
	case DimensionDealer:
		return it.DealerName, it.DealerID
	case DimensionCity:
		return it.City, ""
	case DimensionState:
		return it.State, ""
	}
	return "", ""
}

// ItemPage is one page of search results.
type ItemPage struct {
	Items      []ItemSummary
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

// EmptyItemPage keeps the page shape valid when nothing matched.
func EmptyItemPage(p Pagination) ItemPage {
	return ItemPage{Items: []ItemSummary{}, Page: p.Page, PageSize: p.Limit}
}

// TotalPagesFor computes the page count for a total and page size.
func TotalPagesFor(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Dealer is a seller directory record used for display labels only.
type Dealer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	City    string  `json:"city,omitempty"`
	State   string  `json:"state,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Website string  `json:"website,omitempty"`
	Rating  float64 `json:"rating,omitempty"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Pagination struct {
	Page  int
	Limit int
}

// NewPagination clamps page and limit into their valid ranges.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// SortKey is one of the fixed orderings the storefront offers.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortMileageAsc SortKey = "mileage_asc"
	SortYearDesc   SortKey = "year_desc"
	SortYearAsc    SortKey = "year_asc"
)

var SortKeys = []SortKey{SortNewest, SortPriceAsc, SortPriceDesc, SortMileageAsc, SortYearDesc, SortYearAsc}

// ParseSortKey falls back to SortNewest for unknown keys.
func ParseSortKey(v string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(v)))
	for _, k := range SortKeys {
		if k == key {
			return k
		}
	}
	return SortNewest
}
