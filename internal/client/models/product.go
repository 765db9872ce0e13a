package models

// Product is a catalog item. Images are paths relative to the API base URL.
type Product struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         int64    `json:"price"`
	Stock         int      `json:"stock"`
	Size          string   `json:"size,omitempty"`
	QuantityInBox int      `json:"quantityInBox,omitempty"`
	Images        []string `json:"images,omitempty"`
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// TrendingCount is how many leading catalog products count as trending.
const TrendingCount = 8

// Trending returns the first TrendingCount products.
func Trending(all []Product) []Product {
	if len(all) <= TrendingCount {
		return all
	}
	return all[:TrendingCount]
}
