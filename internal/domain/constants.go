package domain

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ограничения бизнес-валидации
const (
	MaxNotesLength      = 500
	MaxPlayerNameLength = 120
	MaxWhatsappLength   = 32
	MaxEmailLength      = 254
)

// Значения по умолчанию
const (
	DefaultTimezone = "America/Sao_Paulo"
)
