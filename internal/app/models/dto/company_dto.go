package dto

// CreateCompanyRequest represents a request to register a company.
// Companies are upserted by name, so repeating a name updates its info.
type CreateCompanyRequest struct {
	Name string            `json:"name" binding:"required"`
	Info map[string]string `json:"info,omitempty"`
}

// UpdateCompanyRequest represents a company detail update
type UpdateCompanyRequest struct {
	Name *string           `json:"name,omitempty"`
	Info map[string]string `json:"info,omitempty"`
}
