package marketplace

type validatePromoRequest struct {
	Code        string `json:"code"`
	ProviderID  string `json:"providerId"`
	ServiceName string `json:"serviceName"`
}

// errorBody covers both `{"message": "..."}` and `{"error": {"message": "..."}}`.
type errorBody struct {
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	if b.Error != nil {
		return b.Error.Message
	}
	return ""
}
