package model

// UpdateResponse is the JSON body returned after submitting the update form.
type UpdateResponse struct {
	// Success reports whether the server accepted the update.
	Success bool `json:"success"`

	// Message is an optional server message, used on failure.
	Message string `json:"message,omitempty"`
}

// UpdateResult summarizes a save attempt from the update modal.
type UpdateResult struct {
	// ActionURL is where the update was posted.
	ActionURL string `json:"actionUrl"`

	// Progress is the submitted progress value.
	Progress int `json:"progress"`

	// Status is the status previewed for the submitted progress.
	Status ReportStatus `json:"status"`

	// Success reports whether the update was accepted.
	Success bool `json:"success"`

	// Message is the text shown to the user after the attempt.
	Message string `json:"message"`

	// Images lists the attachments sent with the update.
	Images []ImageInfo `json:"images,omitempty"`
}
