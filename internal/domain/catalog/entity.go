// internal/domain/catalog/entity.go
package catalog

// Product is an immutable catalog entry. Prices are in minor currency units.
type Product struct {
	ID               string          `gorm:"primaryKey;size:64" json:"id"`
	Slug             string          `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Name             string          `gorm:"not null;size:255" json:"name"`
	Category         string          `gorm:"not null;index;size:100" json:"category"`
	Subcategory      string          `gorm:"size:100" json:"subcategory,omitempty"`
	Brand            string          `gorm:"size:100" json:"brand"`
	Model            string          `gorm:"size:100" json:"model"`
	SKU              string          `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Price            int64           `gorm:"not null" json:"price"`
	OldPrice         *int64          `json:"oldPrice,omitempty"`
	Discount         *int            `json:"discount,omitempty"` // percent shown on the badge
	Cashback         *int64          `json:"cashback,omitempty"`
	Stock            int             `gorm:"default:0" json:"stock"`
	Rating           float64         `json:"rating"`
	ReviewCount      int             `json:"reviewCount"`
	Description      string          `gorm:"type:text" json:"description"`
	ShortDescription string          `gorm:"size:500" json:"shortDescription,omitempty"`
	Specifications   []Specification `gorm:"serializer:json;type:text" json:"specifications"`
	Images           []Image         `gorm:"serializer:json;type:text" json:"images"`
	Features         []string        `gorm:"serializer:json;type:text" json:"features,omitempty"`
	IsNew            bool            `gorm:"default:false" json:"isNew,omitempty"`
	IsBestseller     bool            `gorm:"default:false" json:"isBestseller,omitempty"`
	IsRecommended    bool            `gorm:"default:false" json:"isRecommended,omitempty"`
	SortOrder        int             `gorm:"default:0;index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// Specification is a name/value pair shown on the product page
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Image is a product picture
type Image struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary"`
}

// HasOldPrice reports whether the product declares a previous price.
// A zero old price counts as absent.
func (p Product) HasOldPrice() bool {
	return p.OldPrice != nil && *p.OldPrice != 0
}

// PrimaryImage returns the image flagged primary, falling back to the first one.
func (p Product) PrimaryImage() Image {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return Image{}
}

// Category groups products under a slug
type Category struct {
	Slug      string `gorm:"primaryKey;size:100" json:"slug"`
	Name      string `gorm:"not null;size:255" json:"name"`
	SortOrder int    `gorm:"default:0" json:"-"`
}

// TableName overrides the table name
func (Category) TableName() string {
	return "categories"
}

// CategoryListing is the resolved data for a category page
type CategoryListing struct {
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
	MinPrice int64     `json:"min_price"`
	MaxPrice int64     `json:"max_price"`
}
