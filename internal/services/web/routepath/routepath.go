// Package routepath holds the URL paths served by the web service.
package routepath

import "strconv"

const (
	Root          = "/"
	Projects      = "/projects"
	ProjectPrefix = "/projects/"
	Live          = "/live"
	StaticPrefix  = "/static/"
	Health        = "/healthz"
	Metrics       = "/metrics"
)

// Section anchors on the home page.
const (
	AnchorAbout    = "#about"
	AnchorFeatured = "#featured"
	AnchorContact  = "#contact"
)

// Project returns the detail page path for a project id.
func Project(id int) string {
	return ProjectPrefix + strconv.Itoa(id)
}

// Static returns the public path of an embedded asset.
func Static(name string) string {
	return StaticPrefix + name
}
