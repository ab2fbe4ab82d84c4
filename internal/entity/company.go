package entity

// Company represents an enriched company record keyed by its domain.
// Every descriptive field is optional: the provider returns null for
// anything it does not know about a domain.
type Company struct {
	Domain         string  `json:"domain" bson:"domain"`
	CompanyName    *string `json:"company_name" bson:"company_name"`
	Description    *string `json:"description" bson:"description"`
	Logo           *string `json:"logo" bson:"logo"`
	YearFounded    *string `json:"year_founded" bson:"year_founded"`
	StreetAddress  *string `json:"street_address" bson:"street_address"`
	City           *string `json:"city" bson:"city"`
	State          *string `json:"state" bson:"state"`
	Country        *string `json:"country" bson:"country"`
	CountryISOCode *string `json:"country_iso_code" bson:"country_iso_code"`
	PostalCode     *string `json:"postal_code" bson:"postal_code"`
	Latitude       *string `json:"latitude" bson:"latitude"`
	Longitude      *string `json:"longitude" bson:"longitude"`
	SICCode        *string `json:"sic_code" bson:"sic_code"`
	NAICSCode      *string `json:"naics_code" bson:"naics_code"`
	Industry       *string `json:"industry" bson:"industry"`
	EmployeeCount  *string `json:"employee_count" bson:"employee_count"`
	EmployeeRange  *string `json:"employee_range" bson:"employee_range"`
	AnnualRevenue  *string `json:"annual_revenue" bson:"annual_revenue"`
	RevenueRange   *string `json:"revenue_range" bson:"revenue_range"`
	Type           *string `json:"type" bson:"type"`
	Ticker         *string `json:"ticker" bson:"ticker"`
	Exchange       *string `json:"exchange" bson:"exchange"`
	GlobalRanking  *string `json:"global_ranking" bson:"global_ranking"`
	LinkedinURL    *string `json:"linkedin_url" bson:"linkedin_url"`
	FacebookURL    *string `json:"facebook_url" bson:"facebook_url"`
	TwitterURL     *string `json:"twitter_url" bson:"twitter_url"`
	InstagramURL   *string `json:"instagram_url" bson:"instagram_url"`
	CrunchbaseURL  *string `json:"crunchbase_url" bson:"crunchbase_url"`
}
