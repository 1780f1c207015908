package cancel_by_order

// CancelByOrderRequest HTTP request model
type CancelByOrderRequest struct {
	CancellationReason string `json:"cancellationReason"`
}
