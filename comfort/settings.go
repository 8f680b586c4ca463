package comfort

// SiteSettings is a singleton record. This layer only ever reads it;
// writes happen through a separate settings surface.
type SiteSettings struct {
	LogoURL        string            `json:"logo_url"`
	FaviconURL     string            `json:"favicon_url"`
	SiteName       string            `json:"site_name"`
	ContactEmail   string            `json:"contact_email"`
	ContactPhone   string            `json:"contact_phone"`
	ContactAddress string            `json:"contact_address"`
	SocialLinks    map[string]string `json:"social_links"`
}
