package model

// StatusPreview is the derived view of a report form: the status that the
// form will submit and the badge metadata shown next to the progress slider.
type StatusPreview struct {
	// Progress is the progress percentage, 0 to 100.
	Progress int `json:"progress"`

	// HasImages reports whether any image evidence is attached or saved.
	HasImages bool `json:"hasImages"`

	// Status is the derived report status.
	Status ReportStatus `json:"status"`

	// BadgeText is the text of the progress badge (e.g. "40%").
	BadgeText string `json:"badgeText"`

	// DisplayClass is the badge color class (e.g. "bg-warning").
	DisplayClass string `json:"displayClass"`

	// BorderClass is the feedback class applied to the status dropdown.
	BorderClass string `json:"borderClass"`

	// Tooltip explains the badge color.
	Tooltip string `json:"tooltip"`

	// Tips are the hint lines shown when the image-aware rules are active.
	Tips []string `json:"tips,omitempty"`

	// Images describes the attached image files, if they were inspected.
	Images []ImageInfo `json:"images,omitempty"`
}

// ImageInfo describes an inspected image attachment.
type ImageInfo struct {
	// Path is the local file path of the attachment.
	Path string `json:"path"`

	// Field is the form field the file is sent as (e.g. "imagem_principal").
	Field string `json:"field"`

	// ContentType is the sniffed MIME type.
	ContentType string `json:"contentType"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Metadata holds selected EXIF tags (camera, timestamp, GPS).
	Metadata map[string]string `json:"metadata,omitempty"`

	// HasGPS reports whether the image carries GPS coordinates.
	HasGPS bool `json:"hasGps"`

	// Error describes why the file could not be inspected, if it could not.
	Error string `json:"error,omitempty"`
}
