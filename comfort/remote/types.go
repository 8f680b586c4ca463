// Package remote holds the wire shape of the content API and the pure
// translation into the canonical types of package comfort. Nothing
// outside this package and the admin layer should ever see these
// types: the upstream field vocabulary (French column names, stringly
// typed amounts, relative asset paths) stays contained here.
package remote

// Action is a project as the API stores it.
type Action struct {
	ID          string `json:"id"`
	Title       string `json:"titre"`
	Description string `json:"description"`
	Category    string `json:"categorie"`
	Status      string `json:"statut"`
	ImageURL    string `json:"image_url"`
	StartDate   string `json:"date_debut"`
	EndDate     string `json:"date_fin,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Remote action statuses.
const (
	ActionOngoing  = "en_cours"
	ActionDone     = "termine"
	ActionUpcoming = "a_venir"
)

type Article struct {
	ID        string `json:"id"`
	Title     string `json:"titre"`
	Slug      string `json:"slug,omitempty"`
	Body      string `json:"contenu"`
	ImageURL  string `json:"image_url"`
	Author    string `json:"auteur"`
	Category  string `json:"categorie"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Remote article publication states.
const (
	ArticlePublished = "publié"
	ArticleDraft     = "brouillon"
)

type Partner struct {
	ID          string `json:"id"`
	Name        string `json:"nom"`
	LogoURL     string `json:"logo_url"`
	Website     string `json:"site_web,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
}

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Donation struct {
	ID        string `json:"id"`
	DonorName string `json:"donateur_nom"`
	Email     string `json:"email"`
	Amount    string `json:"montant"`
	Method    string `json:"methode"`
	Message   string `json:"message,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Remote donation statuses.
const (
	DonationPending   = "en_attente"
	DonationConfirmed = "confirmé"
	DonationCancelled = "annulé"
)
