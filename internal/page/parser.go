package page

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// HTML element names for form field detection.
const (
	htmlElementInput    = "input"
	htmlElementSelect   = "select"
	htmlElementTextarea = "textarea"
)

// Well-known identifiers of the report pages.
const (
	// UpdateFormID is the id of the update form inside the modal.
	UpdateFormID = "updateForm"

	// ThumbnailClass marks previously saved images in edit mode.
	ThumbnailClass = "img-thumbnail"

	// FieldProgressNew is the slider of the update modal.
	FieldProgressNew = "progresso_novo"

	// FieldUpdateDescription is the required description of the update modal.
	FieldUpdateDescription = "descricao_atualizacao"

	// FieldCSRFToken is the hidden field carrying the Django CSRF token.
	FieldCSRFToken = "csrfmiddlewaretoken"
)

// ErrFormNotFound is returned when a page has no matching form.
var ErrFormNotFound = errors.New("form not found in page")

// Parser extracts forms and thumbnails from an HTML page.
// We use golang.org/x/net/html rather than regular expressions because the
// templates nest fields inside modal markup and malformed HTML is common.
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving relative URLs.
	baseURL *url.URL
}

// Document contains the information extracted from a page.
type Document struct {
	// Title is the page title from the <title> tag.
	Title string

	// Forms contains every form in document order.
	Forms []Form

	// Thumbnails contains the resolved sources of saved images.
	Thumbnails []string
}

// Form contains information about an HTML form.
type Form struct {
	// ID is the id attribute.
	ID string

	// Action is the resolved form action URL. An empty action resolves
	// to the page URL, as browsers do.
	Action string

	// Method is the upper-case HTTP method (GET, POST).
	Method string

	// Enctype is the form encoding, e.g. "multipart/form-data".
	Enctype string

	// Fields contains the named fields in document order.
	Fields []Field
}

// Field represents a named form control.
type Field struct {
	// Name is the field name attribute.
	Name string

	// ID is the id attribute.
	ID string

	// Type is the input type (text, hidden, range, file, ...), or "select"
	// and "textarea" for those elements.
	Type string

	// Value is the current value: the value attribute, the textarea text,
	// or the selected option of a select.
	Value string

	// Options lists the choices of a select.
	Options []Option
}

// Option is a choice of a select element.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// NewParser creates a new HTML parser with the given page URL.
func NewParser(pageURL string) (*Parser, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse parses HTML content and extracts forms and thumbnails.
func (p *Parser) Parse(content io.Reader) (*Document, error) {
	root, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Forms:      make([]Form, 0),
		Thumbnails: make([]string, 0),
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				doc.Title = strings.TrimSpace(textContent(n))
			case "form":
				doc.Forms = append(doc.Forms, p.parseForm(n))
			case "img":
				if hasClass(n, ThumbnailClass) {
					doc.Thumbnails = append(doc.Thumbnails, p.resolveURL(getAttr(n, "src")))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return doc, nil
}

// parseForm extracts a form element.
func (p *Parser) parseForm(n *html.Node) Form {
	form := Form{
		ID:      getAttr(n, "id"),
		Action:  p.resolveURL(getAttr(n, "action")),
		Method:  strings.ToUpper(getAttr(n, "method")),
		Enctype: getAttr(n, "enctype"),
		Fields:  make([]Field, 0),
	}
	if form.Method == "" {
		form.Method = "GET"
	}
	if form.Action == "" {
		form.Action = p.baseURL.String()
	}
	extractFormFields(n, &form)
	return form
}

// extractFormFields recursively extracts form fields from a form element.
func extractFormFields(n *html.Node, form *Form) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case htmlElementInput:
			field := Field{
				Name:  getAttr(n, "name"),
				ID:    getAttr(n, "id"),
				Type:  strings.ToLower(getAttr(n, "type")),
				Value: getAttr(n, "value"),
			}
			if field.Type == "" {
				field.Type = "text"
			}
			if field.Name != "" {
				form.Fields = append(form.Fields, field)
			}
			return
		case htmlElementTextarea:
			if name := getAttr(n, "name"); name != "" {
				form.Fields = append(form.Fields, Field{
					Name:  name,
					ID:    getAttr(n, "id"),
					Type:  htmlElementTextarea,
					Value: textContent(n),
				})
			}
			return
		case htmlElementSelect:
			if name := getAttr(n, "name"); name != "" {
				form.Fields = append(form.Fields, parseSelect(n, name))
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractFormFields(c, form)
	}
}

// parseSelect extracts a select element and its options.
// Without a selected option the first option is the value, as in browsers.
func parseSelect(n *html.Node, name string) Field {
	field := Field{
		Name:    name,
		ID:      getAttr(n, "id"),
		Type:    htmlElementSelect,
		Options: make([]Option, 0),
	}

	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == "option" {
			label := strings.TrimSpace(textContent(c))
			value, ok := lookupAttr(c, "value")
			if !ok {
				value = label
			}
			_, selected := lookupAttr(c, "selected")
			field.Options = append(field.Options, Option{Value: value, Label: label, Selected: selected})
			return
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	for _, opt := range field.Options {
		if opt.Selected {
			field.Value = opt.Value
			return field
		}
	}
	if len(field.Options) > 0 {
		field.Value = field.Options[0].Value
	}
	return field
}

// FormByID returns the form with the given id attribute.
func (d *Document) FormByID(id string) (*Form, error) {
	for i := range d.Forms {
		if d.Forms[i].ID == id {
			return &d.Forms[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %q", ErrFormNotFound, id)
}

// UpdateForm returns the update modal form: the form with id "updateForm",
// or else the first form that has a progresso_novo field.
func (d *Document) UpdateForm() (*Form, error) {
	if f, err := d.FormByID(UpdateFormID); err == nil {
		return f, nil
	}
	for i := range d.Forms {
		if _, ok := d.Forms[i].Field(FieldProgressNew); ok {
			return &d.Forms[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no update form", ErrFormNotFound)
}

// HasSavedImages reports whether the page shows previously saved images.
func (d *Document) HasSavedImages() bool {
	return len(d.Thumbnails) > 0
}

// Field returns the first field with the given name.
func (f *Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Value returns the value of the named field, or "" if absent.
func (f *Form) Value(name string) string {
	field, _ := f.Field(name)
	return field.Value
}

// IntValue returns the named field parsed as an integer.
func (f *Form) IntValue(name string) (int, error) {
	field, ok := f.Field(name)
	if !ok {
		return 0, fmt.Errorf("field %q not found", name)
	}
	v, err := strconv.Atoi(strings.TrimSpace(field.Value))
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", name, err)
	}
	return v, nil
}

// HiddenFields returns the values of the hidden inputs, keyed by name.
func (f *Form) HiddenFields() map[string]string {
	hidden := make(map[string]string)
	for _, field := range f.Fields {
		if field.Type == "hidden" {
			hidden[field.Name] = field.Value
		}
	}
	return hidden
}

// FileFields returns the names of the file inputs.
func (f *Form) FileFields() []string {
	names := make([]string, 0)
	for _, field := range f.Fields {
		if field.Type == "file" {
			names = append(names, field.Name)
		}
	}
	return names
}

// resolveURL resolves a relative URL against the page URL.
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "javascript:") || href == "#" {
		return ""
	}
	if strings.HasPrefix(href, "data:") {
		return href
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return p.baseURL.ResolveReference(u).String()
}

// textContent concatenates the text nodes below n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

// hasClass reports whether the element's class list contains class.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// lookupAttr retrieves an attribute value and whether it is present.
func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}
