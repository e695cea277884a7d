// Package web hosts the Royal Studio site: server-rendered pages, the live
// view-session endpoint, static assets, and operations routes.
package web
