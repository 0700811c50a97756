package entry

// CreateRequest is the payload for recording a loss entry.
type CreateRequest struct {
	ProductCode string  `json:"product_code" validate:"required,len=13,numeric"`
	Quantity    float64 `json:"quantity"` // non-negative, enforced by the service
	ReasonID    int64   `json:"reason_id" validate:"required,gt=0"`
	EntryDate   string  `json:"entry_date" validate:"omitempty,datetime=2006-01-02"`
}
