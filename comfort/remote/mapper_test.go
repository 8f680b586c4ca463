package remote

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comfort-asbl/comfort-site-tools/comfort"
)

func TestExcerpt(t *testing.T) {
	t.Run("short bodies pass through unchanged", func(t *testing.T) {
		assert.Equal(t, "courte introduction", Excerpt("courte introduction"))
	})

	t.Run("body exactly at the limit gets no marker", func(t *testing.T) {
		body := strings.Repeat("a", ExcerptLimit)
		assert.Equal(t, body, Excerpt(body))
	})

	t.Run("long bodies are capped with an ellipsis", func(t *testing.T) {
		body := strings.Repeat("b", ExcerptLimit+100)
		got := Excerpt(body)
		assert.Equal(t, strings.Repeat("b", ExcerptLimit)+"...", got)
		assert.Len(t, []rune(got), ExcerptLimit+3)
	})

	t.Run("limit counts characters, not bytes", func(t *testing.T) {
		body := strings.Repeat("é", ExcerptLimit+1)
		got := Excerpt(body)
		assert.Equal(t, ExcerptLimit+3, len([]rune(got)))
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}

func TestResolveAssetURL(t *testing.T) {
	const origin = "https://comfort-asbl.org/api"

	tests := []struct {
		name string
		path string
		want string
	}{
		{"fully qualified http stays untouched", "http://cdn.example.org/a.jpg", "http://cdn.example.org/a.jpg"},
		{"fully qualified https stays untouched", "https://cdn.example.org/a.jpg", "https://cdn.example.org/a.jpg"},
		{"leading slash", "/assets/images/x.jpg", origin + "/assets/images/x.jpg"},
		{"no leading slash", "assets/images/x.jpg", origin + "/assets/images/x.jpg"},
		{"doubled leading slashes collapse", "//assets/images/x.jpg", origin + "/assets/images/x.jpg"},
		{"empty resolves to the placeholder", "", origin + PlaceholderImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAssetURL(origin, tt.path))
		})
	}

	t.Run("trailing slash on origin never doubles", func(t *testing.T) {
		got := ResolveAssetURL(origin+"/", "/assets/images/x.jpg")
		assert.Equal(t, origin+"/assets/images/x.jpg", got)
		assert.NotContains(t, strings.TrimPrefix(got, "https://"), "//")
	})
}

func TestMapAction(t *testing.T) {
	const origin = "http://localhost/api"

	t.Run("french record maps to canonical shape", func(t *testing.T) {
		project := MapAction(Action{
			ID:          "42",
			Title:       "École X",
			Category:    "Éducation",
			Description: "Reconstruction",
			Status:      "termine",
			ImageURL:    "assets/images/ecole.jpg",
			StartDate:   "2023-01-10",
		}, origin)

		assert.Equal(t, "École X", project.Title)
		assert.Equal(t, comfort.ProjectCompleted, project.Status)
		assert.Equal(t, origin+"/assets/images/ecole.jpg", project.Image)
		assert.Equal(t, "2023-01-10", project.Date)
	})

	t.Run("any other status maps to ongoing", func(t *testing.T) {
		for _, status := range []string{ActionOngoing, ActionUpcoming, "", "garbage"} {
			project := MapAction(Action{Status: status}, origin)
			assert.Equal(t, comfort.ProjectOngoing, project.Status, "status %q", status)
		}
	})

	t.Run("missing image resolves to placeholder", func(t *testing.T) {
		project := MapAction(Action{}, origin)
		assert.Equal(t, origin+PlaceholderImage, project.Image)
	})
}

func TestMapArticle(t *testing.T) {
	article := MapArticle(Article{
		ID:        "7",
		Title:     "Rapport annuel",
		Body:      strings.Repeat("x", 400),
		Author:    "COMFORT Team",
		Category:  "News",
		ImageURL:  "/assets/images/blog.jpg",
		CreatedAt: "2023-11-05 14:22:01",
	}, "http://localhost/api")

	assert.Equal(t, strings.Repeat("x", ExcerptLimit)+"...", article.Excerpt)
	assert.Equal(t, "2023-11-05", article.Date)
	assert.Equal(t, "http://localhost/api/assets/images/blog.jpg", article.Image)
}

func TestMapPartner(t *testing.T) {
	t.Run("known type is kept", func(t *testing.T) {
		partner := MapPartner(Partner{Name: "Global Water Aid", Type: "NGO"}, "http://localhost/api")
		assert.Equal(t, comfort.PartnerNGO, partner.Type)
	})

	t.Run("unknown type falls back to corporate", func(t *testing.T) {
		partner := MapPartner(Partner{Name: "X", Type: "autre"}, "http://localhost/api")
		assert.Equal(t, comfort.PartnerCorporate, partner.Type)
	})
}

func TestMapUser(t *testing.T) {
	t.Run("valid role is kept", func(t *testing.T) {
		user := MapUser(User{Username: "g.muruwa", Role: "superadmin"})
		assert.Equal(t, comfort.RoleSuperAdmin, user.Role)
		assert.True(t, user.CanAdminister())
	})

	t.Run("unknown role demotes to user", func(t *testing.T) {
		user := MapUser(User{Username: "x", Role: "root"})
		assert.Equal(t, comfort.RoleUser, user.Role)
		assert.False(t, user.CanAdminister())
	})
}

func TestMapDonation(t *testing.T) {
	t.Run("amount parses from decimal string", func(t *testing.T) {
		donation := MapDonation(Donation{Amount: "1,250.50", Status: DonationConfirmed})
		require.True(t, donation.Amount.Equal(decimal.RequireFromString("1250.50")))
		assert.Equal(t, comfort.DonationConfirmed, donation.Status)
	})

	t.Run("garbage or negative amounts become zero", func(t *testing.T) {
		for _, raw := range []string{"", "abc", "-5"} {
			donation := MapDonation(Donation{Amount: raw})
			assert.True(t, donation.Amount.IsZero(), "amount %q", raw)
		}
	})

	t.Run("statuses normalize to the closed set", func(t *testing.T) {
		assert.Equal(t, comfort.DonationCancelled, MapDonation(Donation{Status: DonationCancelled}).Status)
		assert.Equal(t, comfort.DonationPending, MapDonation(Donation{Status: DonationPending}).Status)
		assert.Equal(t, comfort.DonationPending, MapDonation(Donation{Status: "???"}).Status)
	})
}

func TestMapIsDeterministic(t *testing.T) {
	action := Action{ID: "1", Title: "T", Status: "termine", ImageURL: "a.jpg"}
	first := MapAction(action, "http://localhost/api")
	second := MapAction(action, "http://localhost/api")
	assert.Equal(t, first, second)
}
