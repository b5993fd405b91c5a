package models

// StockAlert публикуется в брокер, когда остаток товара опускается до порога.
type StockAlert struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}
