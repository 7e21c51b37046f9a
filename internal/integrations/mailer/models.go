package mailer

// Хорошо известные шаблоны транзакционных писем
const (
	TemplateBookingReceived      = "booking_received"
	TemplateAppointmentConfirmed = "appointment_confirmed"
	TemplateAppointmentCancelled = "appointment_cancelled"
)

// SendRequest тело запроса к сервису рассылки
type SendRequest struct {
	TemplateID string                 `json:"template_id"`
	Recipient  string                 `json:"recipient"`
	Payload    map[string]interface{} `json:"payload"`
}

// ErrorResponse модель ошибки от сервиса рассылки
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
