package models

import "time"

type Review struct {
	ID           int64        `json:"id"`
	ProductID    int64        `json:"product_id"`
	ProductName  string       `json:"product_name"`
	CustomerName string       `json:"customer_name"`
	Rating       int          `json:"rating"`
	Comment      string       `json:"comment"`
	Reply        string       `json:"reply,omitempty"`
	Status       ReviewStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}
