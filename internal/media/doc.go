// Package media inspects image files attached to a report before upload.
//
// Each attachment is sniffed for its content type and, when it carries
// EXIF metadata, the camera, timestamp and GPS tags are extracted with
// github.com/dsoprea/go-exif/v3. Field photos of equipment frequently carry
// GPS coordinates; the CLI reports them so the user knows what is uploaded.
package media
