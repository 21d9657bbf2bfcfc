// Package page parses the server-rendered report pages.
//
// The report server renders its forms as HTML. Before relatorio submits an
// update it reads the page the browser would have shown: the update form's
// action URL, its hidden fields (including the CSRF token), the initial
// slider value and the thumbnails of images saved earlier. The thumbnails
// are what makes a page count as "edit mode with previously saved images".
package page
