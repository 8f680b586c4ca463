package comfort

import "github.com/shopspring/decimal"

// Compiled-in sample collections. They keep the public site rendering
// something sensible whenever the remote API is unreachable, broken,
// or not yet populated. Image and logo paths are relative and go
// through the same asset resolution as remote records.
//
// Each function returns a fresh slice so callers can hold and reshape
// the result without bleeding into later fallbacks.

func FallbackProjects() []Project {
	return []Project{
		{
			ID:          "1",
			Title:       "Construction d'une école à Masisi",
			Category:    "Éducation",
			Description: "Un projet ambitieux pour offrir un cadre d'apprentissage sécurisé à 500 enfants déplacés, garantissant leur droit fondamental à l'éducation.",
			Image:       "/assets/images/project-1.jpg",
			Date:        "2023-10-15",
			Status:      ProjectOngoing,
			Goal:        50000,
			Raised:      35000,
		},
		{
			ID:          "2",
			Title:       "Eau potable pour Kibumba",
			Category:    "Santé & Eau",
			Description: "Installation de 5 bornes fontaines alimentées par l'énergie solaire pour éradiquer les maladies hydriques dans la région.",
			Image:       "/assets/images/project-2.jpg",
			Date:        "2023-08-01",
			Status:      ProjectCompleted,
			Goal:        15000,
			Raised:      15000,
		},
		{
			ID:          "3",
			Title:       "Autonomisation des femmes",
			Category:    "Dév. Économique",
			Description: "Programme de formation professionnelle et micro-crédit pour 200 femmes chefs de ménage.",
			Image:       "/assets/images/project-3.jpg",
			Date:        "2023-12-01",
			Status:      ProjectOngoing,
			Goal:        25000,
			Raised:      12000,
		},
	}
}

func FallbackArticles() []Article {
	return []Article{
		{
			ID:       "1",
			Title:    "L'impact de l'éducation sur la paix",
			Excerpt:  "Comment l'accès à l'école réduit les conflits communautaires sur le long terme.",
			Author:   "Dr. Jean Amani",
			Date:     "2023-10-12",
			Category: "Analyse",
			Image:    "/assets/images/blog-1.jpg",
		},
		{
			ID:       "2",
			Title:    "Rapport annuel 2023",
			Excerpt:  "Découvrez nos réalisations et nos défis durant l'année écoulée.",
			Author:   "COMFORT Team",
			Date:     "2023-11-05",
			Category: "News",
			Image:    "/assets/images/blog-2.jpg",
		},
	}
}

func FallbackPartners() []Partner {
	return []Partner{
		{
			ID:          "1",
			Name:        "Fondation Virunga",
			Logo:        "/assets/images/partners/partner1.jpg",
			Description: "Collaboration pour la conservation de l'environnement et le développement durable autour du parc.",
			Type:        PartnerNGO,
		},
		{
			ID:          "2",
			Name:        "Ministère de la Santé RDC",
			Logo:        "/assets/images/partners/partner2.png",
			Description: "Partenariat stratégique pour l'accès aux soins de santé primaire dans les zones reculées.",
			Type:        PartnerGovernment,
		},
		{
			ID:          "3",
			Name:        "Tech for Good Congo",
			Logo:        "/assets/images/partners/partner3.jpg",
			Description: "Soutien technique et logistique pour la digitalisation de nos programmes éducatifs.",
			Type:        PartnerCorporate,
		},
		{
			ID:          "4",
			Name:        "Association des Femmes Vaillantes",
			Logo:        "/assets/images/partners/partner4.png",
			Description: "Réseau de bénévoles locaux mobilisés pour l'autonomisation économique des femmes.",
			Type:        PartnerVolunteer,
		},
		{
			ID:          "5",
			Name:        "Global Water Aid",
			Logo:        "/assets/images/partners/partner5.jpg",
			Description: "Financement et expertise technique pour nos projets d'adduction d'eau potable.",
			Type:        PartnerNGO,
		},
		{
			ID:          "6",
			Name:        "Banque Locale de Goma",
			Logo:        "/assets/images/partners/partner6.png",
			Description: "Mécénat d'entreprise soutenant nos initiatives de micro-crédit.",
			Type:        PartnerCorporate,
		},
	}
}

func FallbackTeam() []TeamMember {
	return []TeamMember{
		{
			ID:    "1",
			Name:  "Dr. Jean Amani",
			Role:  "Directeur Exécutif",
			Bio:   "Médecin de santé publique avec 15 ans d'expérience dans l'humanitaire en RDC.",
			Image: "/assets/images/team-1.jpg",
		},
		{
			ID:    "2",
			Name:  "Sarah Kabuya",
			Role:  "Responsable Programmes",
			Bio:   "Experte en développement communautaire et gestion de projets éducatifs.",
			Image: "/assets/images/team-2.jpg",
		},
		{
			ID:    "3",
			Name:  "Michel Kasongo",
			Role:  "Coordinateur Logistique",
			Bio:   "Spécialiste de la chaîne d'approvisionnement en zones difficiles d'accès.",
			Image: "/assets/images/team-3.jpg",
		},
		{
			ID:    "4",
			Name:  "Aline Mwamba",
			Role:  "Responsable Partenariats",
			Bio:   "Passionnée par la mobilisation de ressources et le plaidoyer international.",
			Image: "/assets/images/team-4.jpg",
		},
	}
}

func FallbackTestimonials() []Testimonial {
	return []Testimonial{
		{
			ID:      "1",
			Name:    "John K. Biloto",
			Role:    "Partenaire institutionnel",
			Content: "Collaborer avec COMFORT Asbl a transformé notre manière d'intervenir sur le terrain. Leur rigueur, leur transparence et leur capacité à mobiliser rapidement les ressources en font un partenaire fiable et visionnaire.",
			Image:   "/assets/images/temoins/t1.jpg",
		},
		{
			ID:      "2",
			Name:    "Charle Landa",
			Role:    "Internaute / Observateur engagé",
			Content: "Beaucoup d'organisations parlent d'impact, mais COMFORT le démontre chaque jour sur le terrain. Leur communication claire et leurs résultats visibles m'ont inspiré à suivre de près leurs initiatives.",
			Image:   "/assets/images/temoins/t2.jpg",
		},
		{
			ID:      "3",
			Name:    "Gabriel Muruwa",
			Role:    "Coordinateur COMFORT Asbl",
			Content: "Notre priorité est de servir les populations les plus vulnérables avec intégrité et responsabilité. Voir des vies s'améliorer, des familles retrouver espoir et des communautés se reconstruire, voilà ce qui nous motive.",
			Image:   "/assets/images/temoins/t3.jpg",
		},
	}
}

// FallbackUsers is empty on purpose: there is no sensible sample user
// to show, and an empty admin table is the honest rendering when the
// API is down.
func FallbackUsers() []User { return nil }

func FallbackDonations() []Donation {
	return []Donation{
		{
			ID:        "1",
			DonorName: "Anonyme",
			Email:     "donateur@example.org",
			Amount:    decimal.NewFromInt(50),
			Method:    "mobile_money",
			Status:    DonationConfirmed,
			Created:   "2023-11-20",
		},
	}
}

func FallbackSettings() SiteSettings {
	return SiteSettings{
		LogoURL:        "/assets/images/logo1.png",
		FaviconURL:     "/assets/images/favicon.ico",
		SiteName:       "COMFORT Asbl",
		ContactEmail:   "contact@comfort-asbl.org",
		ContactPhone:   "+243 994 280 037",
		ContactAddress: "Katindo Beni 108, Goma, RDC",
		SocialLinks: map[string]string{
			"facebook": "https://facebook.com",
			"twitter":  "https://x.com",
		},
	}
}
