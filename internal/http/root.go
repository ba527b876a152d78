package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/links"
)

// RootController serves the API entry point.
type RootController struct {
	hyper *Hypermedia
}

func NewRootController(hyper *Hypermedia) *RootController {
	return &RootController{hyper: hyper}
}

// GetRoot handles GET /api
// Hypermedia clients get the top-level links; everyone else gets 204.
func (rc *RootController) GetRoot(c *gin.Context) {
	if rc.hyper.Mode(c) != links.ModeHypermedia {
		c.Status(http.StatusNoContent)
		return
	}

	set := linkSet{builder: rc.hyper.Builder(c)}
	set.add(RouteGetRoot, "self", nil)
	set.add(RouteGetAuthors, "authors", nil)
	set.add(RouteCreateAuthor, "create_author", nil)
	if set.err != nil {
		respondInternalError(c, set.err, "root links")
		return
	}
	c.JSON(http.StatusOK, set.links)
}
