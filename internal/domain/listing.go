package domain

// Listing categories form a closed set; "size" only applies to clothes
// and "genre" only to books.
const (
	CategoryClothes       = "clothes"
	CategoryMiscellaneous = "miscellaneous"
	CategoryGadgets       = "gadgets"
	CategoryStationary    = "stationary"
	CategoryBooks         = "books"
	CategoryOther         = "other"
)

var Categories = []string{
	CategoryClothes,
	CategoryMiscellaneous,
	CategoryGadgets,
	CategoryStationary,
	CategoryBooks,
	CategoryOther,
}

var Sizes = []string{"XXS", "XS", "S", "M", "L", "XL", "XXL"}

var Genres = []string{"Fiction", "Non-Fiction", "Textbook", "Sci-Fi", "Mystery", "History", "Other"}

// CategoryLabel returns a display name for a category id.
func CategoryLabel(category string) string {
	switch category {
	case CategoryClothes:
		return "Clothes & Apparel"
	case CategoryGadgets:
		return "Electronics & Gadgets"
	case CategoryStationary:
		return "Stationary & Supplies"
	case CategoryMiscellaneous:
		return "Miscellaneous"
	case CategoryBooks:
		return "Books"
	default:
		return "Other"
	}
}

type Listing struct {
	ID                string  `db:"id"`
	SellerID          string  `db:"seller_id"`
	Title             string  `db:"title"`
	Description       string  `db:"description"`
	Price             float64 `db:"price"`
	ImageURL          *string `db:"image_url"`
	SupportImagesJSON string  `db:"support_images_json"`
	Category          string  `db:"category"`
	Size              *string `db:"size"`
	Genre             *string `db:"genre"`
	Quantity          int     `db:"quantity"`
	CreatedAt         string  `db:"created_at"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}
