package dto

// SupportRequest pregunta del chat de soporte del sitio.
type SupportRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// SupportResponse respuesta del asistente.
type SupportResponse struct {
	Reply string `json:"reply"`
}
