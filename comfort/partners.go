package comfort

type PartnerType string

const (
	PartnerCorporate  PartnerType = "Corporate"
	PartnerNGO        PartnerType = "NGO"
	PartnerGovernment PartnerType = "Government"
	PartnerVolunteer  PartnerType = "Volunteer"
)

type Partner struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Logo        string      `json:"logo"`
	Description string      `json:"description"`
	Type        PartnerType `json:"type"`
	Website     string      `json:"website,omitempty"`
}
