package models

// Категории каталога.
const (
	CategoryLawn       = "lawn"
	CategoryMotorcycle = "motorcycle"
)

type Tire struct {
	ID          string  `json:"id"`
	Brand       string  `json:"brand"`
	Size        string  `json:"size"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	// Только для мото: Front / Rear.
	Position *string `json:"position,omitempty"`
}

// TireFilter задаёт точные совпадения; пустое поле подходит под всё.
type TireFilter struct {
	Category string
	Brand    string
	Size     string
}

func (f TireFilter) IsZero() bool {
	return f.Category == "" && f.Brand == "" && f.Size == ""
}

// Match сообщает, подходит ли t под все непустые поля f.
// Сравнение чувствительно к регистру.
func (f TireFilter) Match(t *Tire) bool {
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Brand != "" && t.Brand != f.Brand {
		return false
	}
	if f.Size != "" && t.Size != f.Size {
		return false
	}
	return true
}

func IsValidCategory(c string) bool {
	return c == CategoryLawn || c == CategoryMotorcycle
}
