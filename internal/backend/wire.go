package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/archplans/plan-portal/internal/catalog/domain"
)

// FlexNumber decodes a JSON number, a numeric string or null. Anything
// unparseable decodes to zero.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = FlexNumber(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*n = 0
		return nil
	}
	*n = FlexNumber(v)
	return nil
}

func (n FlexNumber) Float() float64 { return float64(n) }
func (n FlexNumber) Int() int       { return int(n) }

// FlexBool decodes true/false as well as "true"/"false" strings and 0/1.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	switch strings.Trim(strings.ToLower(string(bytes.TrimSpace(b))), `"`) {
	case "true", "1", "yes":
		*f = true
	default:
		*f = false
	}
	return nil
}

// Plan is the backend representation of a plan listing.
type Plan struct {
	MongoID       string     `json:"_id"`
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Architect     string     `json:"architect"`
	Tags          []string   `json:"tags"`
	Price         FlexNumber `json:"price"`
	Rooms         FlexNumber `json:"rooms"`
	Floors        FlexNumber `json:"floors"`
	Category      string     `json:"category"`
	CategoryGroup string     `json:"categoryGroup"`
	Subcategory   string     `json:"subcategory"`
	Featured      FlexBool   `json:"featured"`
	IsFeatured    FlexBool   `json:"isFeatured"`
	NewListing    FlexBool   `json:"newListing"`
	IsNew         FlexBool   `json:"isNew"`
	Customizable  FlexBool   `json:"customizable"`
	Premium       FlexBool   `json:"premium"`
	Images        []string   `json:"images"`
	MainImage     string     `json:"mainImage"`
	CoverImage    string     `json:"coverImage"`
	Thumbnail     string     `json:"thumbnail"`
	FinalImages   []string   `json:"finalImages"`
	Views         FlexNumber `json:"views"`
	Favorites     FlexNumber `json:"favorites"`
	Inquiries     FlexNumber `json:"inquiries"`
	Rating        FlexNumber `json:"rating"`
	Downloads     FlexNumber `json:"downloads"`
	CreatedAt     string     `json:"createdAt"`
	Status        string     `json:"status"`
}

// Record converts the wire plan into a normalized catalog record.
func (p Plan) Record() domain.PlanRecord {
	group := domain.CategoryGroup(strings.TrimSpace(firstNonEmpty(p.CategoryGroup, p.Category)))
	if g, ok := domain.ParseCategoryGroup(string(group)); ok {
		group = g
	}
	price := p.Price.Float()
	if price < 0 {
		price = 0
	}

	return domain.PlanRecord{
		ID:            firstNonEmpty(p.MongoID, p.ID),
		Title:         p.Title,
		Description:   p.Description,
		Architect:     p.Architect,
		Tags:          p.Tags,
		Price:         price,
		Rooms:         p.Rooms.Int(),
		Floors:        p.Floors.Int(),
		CategoryGroup: group,
		Subcategory:   p.Subcategory,
		Featured:      bool(p.Featured || p.IsFeatured),
		NewListing:    bool(p.NewListing || p.IsNew),
		Customizable:  bool(p.Customizable),
		Premium:       bool(p.Premium),
		Images: domain.NormalizeImages(domain.ImageFields{
			Images:      p.Images,
			MainImage:   p.MainImage,
			CoverImage:  p.CoverImage,
			Thumbnail:   p.Thumbnail,
			FinalImages: p.FinalImages,
		}),
		Views:     p.Views.Int(),
		Favorites: p.Favorites.Int(),
		Inquiries: p.Inquiries.Int(),
		Rating:    p.Rating.Float(),
		Downloads: p.Downloads.Int(),
		CreatedAt: parseTime(p.CreatedAt),
		Status:    p.Status,
	}
}

// PlanRecords converts and normalizes a list of wire plans.
func PlanRecords(plans []Plan) []domain.PlanRecord {
	out := make([]domain.PlanRecord, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.Record())
	}
	return out
}

// Inquiry is the backend representation of a plan inquiry.
type Inquiry struct {
	MongoID      string `json:"_id"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProjectTitle string `json:"projectTitle"`
	Message      string `json:"message"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

func (i Inquiry) Record() domain.InquiryRecord {
	return domain.InquiryRecord{
		ID:           firstNonEmpty(i.MongoID, i.ID),
		ClientName:   i.Name,
		ClientEmail:  i.Email,
		ProjectTitle: i.ProjectTitle,
		Message:      i.Message,
		Status:       i.Status,
		CreatedAt:    parseTime(i.CreatedAt),
	}
}

func InquiryRecords(in []Inquiry) []domain.InquiryRecord {
	out := make([]domain.InquiryRecord, 0, len(in))
	for _, i := range in {
		out = append(out, i.Record())
	}
	return out
}

// CustomRequest is the backend representation of a custom-design request.
type CustomRequest struct {
	MongoID     string `json:"_id"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"projectType"`
	Rooms       string `json:"rooms"`
	Budget      string `json:"budget"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

func (r CustomRequest) Record() domain.CustomRequestRecord {
	return domain.CustomRequestRecord{
		ID:          firstNonEmpty(r.MongoID, r.ID),
		ClientName:  r.Name,
		ClientEmail: r.Email,
		ClientPhone: r.Phone,
		ProjectType: r.ProjectType,
		Rooms:       r.Rooms,
		Budget:      r.Budget,
		Description: r.Description,
		Status:      r.Status,
		CreatedAt:   parseTime(r.CreatedAt),
	}
}

func CustomRequestRecords(in []CustomRequest) []domain.CustomRequestRecord {
	out := make([]domain.CustomRequestRecord, 0, len(in))
	for _, r := range in {
		out = append(out, r.Record())
	}
	return out
}

// Category is an entry of GET /api/categories.
type Category struct {
	MongoID       string   `json:"_id"`
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Group         string   `json:"group"`
	Subcategories []string `json:"subcategories"`
}

func (c Category) Record() domain.Category {
	return domain.Category{
		ID:            firstNonEmpty(c.MongoID, c.ID),
		Name:          c.Name,
		Group:         c.Group,
		Subcategories: c.Subcategories,
	}
}

// Profile is the authenticated user returned by GET /api/auth/profile.
type Profile struct {
	MongoID   string   `json:"_id"`
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	IsAdmin   FlexBool `json:"isAdmin"`
	CreatedAt string   `json:"createdAt"`
}

func (p Profile) UserID() string { return firstNonEmpty(p.MongoID, p.ID) }

func (p Profile) Admin() bool {
	return bool(p.IsAdmin) || strings.EqualFold(p.Role, "admin")
}

// decodeList accepts either a bare JSON array or an object wrapping the array
// under one of keys.
func decodeList[T any](body []byte, keys ...string) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	if body[0] == '[' {
		var out []T
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return out, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for _, k := range append(keys, "data", "items") {
		raw, ok := wrapper[k]
		if !ok {
			continue
		}
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrMalformedResponse, k, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: no list field in object", ErrMalformedResponse)
}

func parseTime(s string) *time.Time {
	t, ok := domain.ParseTimestamp(s)
	if !ok {
		return nil
	}
	return &t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
