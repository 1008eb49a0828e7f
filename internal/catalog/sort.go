package catalog

// Sort selects the listing order.
type Sort string

const (
	SortNewest     Sort = "newest"
	SortPriceAsc   Sort = "price-asc"
	SortPriceDesc  Sort = "price-desc"
	SortBestseller Sort = "bestseller"
)

// Sorts lists the supported orders, default first.
func Sorts() []Sort {
	return []Sort{SortNewest, SortPriceAsc, SortPriceDesc, SortBestseller}
}

func (s Sort) Valid() bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortBestseller:
		return true
	}
	return false
}

// ParseSort maps raw input to a Sort, falling back to newest.
func ParseSort(raw string) Sort {
	if s := Sort(raw); s.Valid() {
		return s
	}
	return SortNewest
}

// Order is one ORDER BY key.
type Order struct {
	Field string
	Desc  bool
}

const (
	FieldCreatedAt    = "created_at"
	FieldPrice        = "price"
	FieldIsBestseller = "is_bestseller"
)

// Orders expands the sort into ordered keys. Ties past the listed keys are
// left to the store.
func (s Sort) Orders() []Order {
	switch s {
	case SortPriceAsc:
		return []Order{{Field: FieldPrice}}
	case SortPriceDesc:
		return []Order{{Field: FieldPrice, Desc: true}}
	case SortBestseller:
		return []Order{{Field: FieldIsBestseller, Desc: true}, {Field: FieldCreatedAt, Desc: true}}
	default:
		return []Order{{Field: FieldCreatedAt, Desc: true}}
	}
}
