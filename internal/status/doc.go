// Package status derives the report status from the progress value and the
// presence of image evidence.
//
// The derivation is a pure function. It is recomputed on every form event
// and never stores history:
//
//	res := status.Derive(40, true)
//	// res.Status == model.StatusInProgress
//	// res.DisplayClass == "bg-warning"
//	// res.Tooltip == "Trabalhando na solução"
//
// With images attached, 0% already counts as in progress: the photos are
// work product documenting the problem, so the report is never Pending.
package status
