package domain

import "time"

// Product is a catalog item. When ImageData is present the externally
// visible Image field is the synthetic /api/products/:id/image path rather
// than the originally uploaded URL.
type Product struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"index" json:"name"`
	Price            float64   `json:"price"`
	Category         string    `gorm:"index;size:64" json:"category"`
	Stock            int       `json:"stock"`
	Description      string    `json:"description"`
	Image            string    `gorm:"size:1024" json:"image"`
	ImageData        []byte    `gorm:"type:bytea" json:"-"`
	ImageName        string    `gorm:"size:255" json:"-"`
	ImageContentType string    `gorm:"size:128" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// HasImageData reports whether a binary image payload is stored inline.
func (p Product) HasImageData() bool {
	return len(p.ImageData) > 0
}
