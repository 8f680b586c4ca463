package remote

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/comfort-asbl/comfort-site-tools/comfort"
)

// ExcerptLimit is the maximum excerpt length in characters, not
// counting the ellipsis marker.
const ExcerptLimit = 150

// PlaceholderImage is returned whenever a record carries no image, so
// presentation code never has to null-check asset fields.
const PlaceholderImage = "/assets/images/placeholder.png"

// Excerpt derives a bounded preview from a long-form body. Bodies at
// or under the limit come back unchanged, with no marker.
func Excerpt(body string) string {
	runes := []rune(body)
	if len(runes) <= ExcerptLimit {
		return body
	}
	return string(runes[:ExcerptLimit]) + "..."
}

// ResolveAssetURL turns an image or logo reference into a renderable
// URL. Fully-qualified URLs pass through unchanged; anything else is
// joined onto origin with exactly one separator. Empty references
// resolve to the placeholder.
func ResolveAssetURL(origin, path string) string {
	if path == "" {
		path = PlaceholderImage
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(path, "/")
}

// dateOnly keeps the YYYY-MM-DD prefix of a "YYYY-MM-DD HH:MM:SS"
// timestamp.
func dateOnly(ts string) string {
	if i := strings.IndexByte(ts, ' '); i >= 0 {
		return ts[:i]
	}
	return ts
}

func MapAction(a Action, origin string) comfort.Project {
	status := comfort.ProjectOngoing
	if a.Status == ActionDone {
		status = comfort.ProjectCompleted
	}

	return comfort.Project{
		ID:          a.ID,
		Title:       a.Title,
		Category:    a.Category,
		Description: a.Description,
		Image:       ResolveAssetURL(origin, a.ImageURL),
		Date:        a.StartDate,
		EndDate:     a.EndDate,
		Status:      status,
		// The API does not manage funding figures yet.
		Goal:   0,
		Raised: 0,
	}
}

func MapActions(actions []Action, origin string) []comfort.Project {
	projects := make([]comfort.Project, 0, len(actions))
	for _, a := range actions {
		projects = append(projects, MapAction(a, origin))
	}
	return projects
}

func MapArticle(a Article, origin string) comfort.Article {
	return comfort.Article{
		ID:       a.ID,
		Title:    a.Title,
		Excerpt:  Excerpt(a.Body),
		Author:   a.Author,
		Date:     dateOnly(a.CreatedAt),
		Category: a.Category,
		Image:    ResolveAssetURL(origin, a.ImageURL),
	}
}

func MapArticles(articles []Article, origin string) []comfort.Article {
	out := make([]comfort.Article, 0, len(articles))
	for _, a := range articles {
		out = append(out, MapArticle(a, origin))
	}
	return out
}

func MapPartner(p Partner, origin string) comfort.Partner {
	t := comfort.PartnerType(p.Type)
	switch t {
	case comfort.PartnerCorporate, comfort.PartnerNGO, comfort.PartnerGovernment, comfort.PartnerVolunteer:
	default:
		t = comfort.PartnerCorporate
	}

	return comfort.Partner{
		ID:          p.ID,
		Name:        p.Name,
		Logo:        ResolveAssetURL(origin, p.LogoURL),
		Description: p.Description,
		Type:        t,
		Website:     p.Website,
	}
}

func MapPartners(partners []Partner, origin string) []comfort.Partner {
	out := make([]comfort.Partner, 0, len(partners))
	for _, p := range partners {
		out = append(out, MapPartner(p, origin))
	}
	return out
}

func MapUser(u User) comfort.User {
	role := comfort.Role(u.Role)
	if !comfort.ValidRole(role) {
		role = comfort.RoleUser
	}

	return comfort.User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     role,
		Created:  dateOnly(u.CreatedAt),
	}
}

func MapUsers(users []User) []comfort.User {
	out := make([]comfort.User, 0, len(users))
	for _, u := range users {
		out = append(out, MapUser(u))
	}
	return out
}

func MapDonation(d Donation) comfort.Donation {
	amount, err := decimal.NewFromString(strings.ReplaceAll(d.Amount, ",", ""))
	if err != nil || amount.IsNegative() {
		amount = decimal.Zero
	}

	var status comfort.DonationStatus
	switch d.Status {
	case DonationConfirmed:
		status = comfort.DonationConfirmed
	case DonationCancelled:
		status = comfort.DonationCancelled
	default:
		status = comfort.DonationPending
	}

	return comfort.Donation{
		ID:        d.ID,
		DonorName: d.DonorName,
		Email:     d.Email,
		Amount:    amount,
		Method:    d.Method,
		Message:   d.Message,
		Status:    status,
		Created:   dateOnly(d.CreatedAt),
	}
}

func MapDonations(donations []Donation) []comfort.Donation {
	out := make([]comfort.Donation, 0, len(donations))
	for _, d := range donations {
		out = append(out, MapDonation(d))
	}
	return out
}

// ResolveSettings resolves the asset references of a settings record
// in place. Settings arrive already in canonical field shape.
func ResolveSettings(s comfort.SiteSettings, origin string) comfort.SiteSettings {
	s.LogoURL = ResolveAssetURL(origin, s.LogoURL)
	s.FaviconURL = ResolveAssetURL(origin, s.FaviconURL)
	return s
}

// ResolveTeam and ResolveTestimonials resolve member photos; those
// collections otherwise arrive in canonical shape.
func ResolveTeam(members []comfort.TeamMember, origin string) []comfort.TeamMember {
	out := make([]comfort.TeamMember, 0, len(members))
	for _, m := range members {
		m.Image = ResolveAssetURL(origin, m.Image)
		out = append(out, m)
	}
	return out
}

func ResolveTestimonials(ts []comfort.Testimonial, origin string) []comfort.Testimonial {
	out := make([]comfort.Testimonial, 0, len(ts))
	for _, t := range ts {
		t.Image = ResolveAssetURL(origin, t.Image)
		out = append(out, t)
	}
	return out
}
