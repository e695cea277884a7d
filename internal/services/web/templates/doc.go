// Package templates renders the site's HTML as templ components.
//
// Regions watched by the live session carry data-region and data-thresholds
// attributes; the client script attaches one IntersectionObserver per region
// and reports ratios back over the live connection.
package templates
