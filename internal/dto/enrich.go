package dto

// EnrichRequest carries the candidate domain submitted for enrichment.
// The caller-facing layer is responsible for extracting a domain from
// URLs or email addresses before calling the API.
type EnrichRequest struct {
	Domain string `json:"domain"`
}
