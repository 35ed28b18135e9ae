package dto

// SearchRequest holds the query of GET /search
type SearchRequest struct {
	Query   string `query:"query" validate:"required,max=1000"`
	Contact string `query:"contact" validate:"omitempty,max=100"`
}

// BriefingRequest binds the :contact path parameter
type BriefingRequest struct {
	Contact string `param:"contact" validate:"required,max=100"`
}
