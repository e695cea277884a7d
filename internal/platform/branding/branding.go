// Package branding holds product naming shared across services.
package branding

// AppName is the public product name shown in page titles.
const AppName = "Royal Studio"
