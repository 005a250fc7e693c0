package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarClienteRequest struct {
	StoreID string `json:"store_id" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OperacionDiaResponse struct {
	ID            string `json:"id"`
	IDItem        string `json:"id_item"`
	OperationType string `json:"operation_type"`
	CreatedAt     string `json:"created_at"`
	Position      int    `json:"position"`
}
