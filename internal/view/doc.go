// Package view turns fetch results into page models.
//
// The functions here are pure: they decide which state of a page is shown and
// what it contains, and leave HTML to the templates in internal/web.
package view
