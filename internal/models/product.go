package models

// Product описывает товар каталога.
//
// ID генерируется из названия и времени создания, см. пакет slug.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	VideoID     string  `json:"video_id"`
	Stock       int     `json:"stock"`
	IsActive    bool    `json:"is_active"`
}

// Visible сообщает, попадает ли товар в публичную витрину.
func (p Product) Visible() bool {
	return p.IsActive && p.Stock > 0
}
