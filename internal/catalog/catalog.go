package catalog

// Product is a storefront catalog entry. The catalog is seeded at startup
// and read-only afterwards, so no locking is needed.
type Product struct {
	ID    int     `json:"product_id"`
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type Store struct {
	products []Product
}

func NewStore() *Store {
	return &Store{products: []Product{
		{ID: 1, SKU: "TSHIRT-BLK-M", Name: "Black T-Shirt (M)", Price: 19.99, Stock: 120},
		{ID: 2, SKU: "MUG-WHT", Name: "Ceramic Mug", Price: 9.50, Stock: 340},
		{ID: 3, SKU: "HOODIE-GRY-L", Name: "Grey Hoodie (L)", Price: 49.00, Stock: 58},
		{ID: 4, SKU: "STICKER-PACK", Name: "Sticker Pack", Price: 4.99, Stock: 1000},
		{ID: 5, SKU: "CAP-NVY", Name: "Navy Cap", Price: 14.75, Stock: 212},
	}}
}

func (s *Store) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}
