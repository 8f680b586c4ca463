package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comfort-asbl/comfort-site-tools/comfort"
)

// CollectionHandler serves one canonical collection out of the shared
// store, annotated with where the data last came from.
func CollectionHandler(store *comfort.Store, kind comfort.Kind) func(*gin.Context) {
	return func(c *gin.Context) {
		var data any

		switch kind {
		case comfort.KindProjects:
			data = store.Projects()
		case comfort.KindArticles:
			data = store.Articles()
		case comfort.KindPartners:
			data = store.Partners()
		case comfort.KindUsers:
			data = store.Users()
		case comfort.KindDonations:
			data = store.Donations()
		case comfort.KindTeam:
			data = store.Team()
		case comfort.KindTestimonials:
			data = store.Testimonials()
		case comfort.KindSettings:
			data = store.Settings()
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"source": store.SourceOf(kind),
			"data":   data,
		})
	}
}

// RefreshHandler forces a reload of one collection from the remote
// API (or its fallback) into the store.
func RefreshHandler(store *comfort.Store, kind comfort.Kind) func(*gin.Context) {
	return func(c *gin.Context) {
		store.Refresh(c.Request.Context(), kind)
		c.JSON(http.StatusOK, gin.H{"source": store.SourceOf(kind)})
	}
}
