package comfort

// Kind names a top-level collection. The value doubles as the remote
// endpoint segment and the snapshot table key.
type Kind string

const (
	KindProjects     Kind = "actions"
	KindArticles     Kind = "articles"
	KindPartners     Kind = "partners"
	KindUsers        Kind = "users"
	KindDonations    Kind = "donations"
	KindTeam         Kind = "team"
	KindTestimonials Kind = "testimonials"
	KindSettings     Kind = "settings"
)

// Kinds lists every collection in initial-load order. Loads are
// independent across kinds; the order only matters for display.
func Kinds() []Kind {
	return []Kind{
		KindProjects,
		KindArticles,
		KindPartners,
		KindUsers,
		KindDonations,
		KindTeam,
		KindTestimonials,
		KindSettings,
	}
}
