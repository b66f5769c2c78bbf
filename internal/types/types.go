package types

// EvmRequest carries the calculator inputs over the HTTP API. Bac is optional.
type EvmRequest struct {
	PV  float64  `json:"pv"`
	EV  float64  `json:"ev"`
	AC  float64  `json:"ac"`
	BAC *float64 `json:"bac,omitempty"`
}

// EvmResponse mirrors the calculator result; null fields mean "not applicable".
type EvmResponse struct {
	SPI    *float64 `json:"spi"`
	CPI    *float64 `json:"cpi"`
	EAC    *float64 `json:"eac"`
	Report string   `json:"report"`
}

type TopicsResponse struct {
	Topics []string `json:"topics"`
}

type LessonResponse struct {
	Topic string `json:"topic"`
	Card  string `json:"card"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
