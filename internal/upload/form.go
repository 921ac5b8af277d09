// Package upload validates admin plan uploads and forwards them to the
// backend as multipart.
package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/archplans/plan-portal/internal/catalog/domain"
)

const (
	FieldPlanImages  = "planImages"
	FieldFinalImages = "finalImages"

	maxFilesPerField = 20
	maxFileSize      = 10 << 20
)

var ErrInvalidUpload = errors.New("invalid upload")

// PlanForm is a validated upload form.
type PlanForm struct {
	Title        string
	Description  string
	Architect    string
	Price        float64
	Rooms        int
	Floors       int
	Category     domain.CategoryGroup
	Subcategory  string
	Tags         []string
	Featured     bool
	NewListing   bool
	Customizable bool
	Premium      bool
	PlanImages   []*multipart.FileHeader
	FinalImages  []*multipart.FileHeader
}

// ParseForm validates a parsed multipart form.
func ParseForm(form *multipart.Form) (*PlanForm, error) {
	if form == nil {
		return nil, fmt.Errorf("%w: multipart form required", ErrInvalidUpload)
	}
	get := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	p := &PlanForm{
		Title:       get("title"),
		Description: get("description"),
		Architect:   get("architect"),
		Subcategory: get("subcategory"),
		PlanImages:  form.File[FieldPlanImages],
		FinalImages: form.File[FieldFinalImages],
	}
	if p.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidUpload)
	}

	price, err := strconv.ParseFloat(get("price"), 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("%w: price must be a non-negative number", ErrInvalidUpload)
	}
	p.Price = price

	group, ok := domain.ParseCategoryGroup(get("category"))
	if !ok {
		return nil, fmt.Errorf("%w: %w %q", ErrInvalidUpload, domain.ErrInvalidCategory, get("category"))
	}
	p.Category = group

	if p.Rooms, err = optionalCount(get("rooms"), "rooms"); err != nil {
		return nil, err
	}
	if p.Floors, err = optionalCount(get("floors"), "floors"); err != nil {
		return nil, err
	}

	for _, t := range strings.Split(get("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			p.Tags = append(p.Tags, t)
		}
	}

	p.Featured = flag(get("featured"))
	p.NewListing = flag(get("newListing"))
	p.Customizable = flag(get("customizable"))
	p.Premium = flag(get("premium"))

	if err := checkFiles(FieldPlanImages, p.PlanImages); err != nil {
		return nil, err
	}
	if err := checkFiles(FieldFinalImages, p.FinalImages); err != nil {
		return nil, err
	}
	return p, nil
}

// Fields returns the text fields in the order they are forwarded.
func (p *PlanForm) Fields() [][2]string {
	fields := [][2]string{
		{"title", p.Title},
		{"description", p.Description},
		{"architect", p.Architect},
		{"price", strconv.FormatFloat(p.Price, 'f', -1, 64)},
		{"rooms", strconv.Itoa(p.Rooms)},
		{"floors", strconv.Itoa(p.Floors)},
		{"category", string(p.Category)},
		{"subcategory", p.Subcategory},
		{"tags", strings.Join(p.Tags, ",")},
		{"featured", strconv.FormatBool(p.Featured)},
		{"newListing", strconv.FormatBool(p.NewListing)},
		{"customizable", strconv.FormatBool(p.Customizable)},
		{"premium", strconv.FormatBool(p.Premium)},
	}
	return fields
}

func optionalCount(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidUpload, name)
	}
	return n, nil
}

func flag(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b || v == "on"
}

func checkFiles(field string, files []*multipart.FileHeader) error {
	if len(files) > maxFilesPerField {
		return fmt.Errorf("%w: at most %d files in %s", ErrInvalidUpload, maxFilesPerField, field)
	}
	for _, fh := range files {
		if fh.Size > maxFileSize {
			return fmt.Errorf("%w: %s exceeds %d MB", ErrInvalidUpload, fh.Filename, maxFileSize>>20)
		}
		if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
			return fmt.Errorf("%w: %s is not an image", ErrInvalidUpload, fh.Filename)
		}
	}
	return nil
}
