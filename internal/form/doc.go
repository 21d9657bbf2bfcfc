// Package form holds the state of the maintenance report page.
//
// The browser version kept this state in DOM elements and re-derived the
// status from debounced input events and a polling timer. Here every input
// is an explicit method call that recomputes the derived status at once, and
// rendering is a pure function of the state:
//
//	f := form.NewReportForm(0)
//	f.AttachMainImage("vazamento.jpg")
//	v := f.View() // 0% + image: em_andamento, bg-info
//
// ReportForm is the create/edit form, Dropdown the equipment select that
// depends on the chosen location, and UpdateModal the "new update" dialog
// that posts in the background.
package form
