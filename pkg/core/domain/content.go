package domain

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Kind identifies one of the admin-editable content types.
type Kind string

const (
	KindHero       Kind = "hero"
	KindAbout      Kind = "about"
	KindServices   Kind = "services"
	KindProjects   Kind = "projects"
	KindExperience Kind = "experience"
	KindSkills     Kind = "skills"
)

// Store collections
const (
	CollectionContent      = "content"
	CollectionServices     = "services"
	CollectionProjects     = "projects"
	CollectionExperience   = "experience"
	CollectionSkills       = "skills"
	CollectionMessages     = "messages"
	CollectionAppointments = "appointments"
)

// Kinds lists every editable kind in admin tab order.
var Kinds = []Kind{KindHero, KindAbout, KindServices, KindProjects, KindExperience, KindSkills}

// ParseKind resolves a kind name. "portfolio" is accepted as the admin tab
// name for projects.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindHero, KindAbout, KindServices, KindProjects, KindExperience, KindSkills:
		return k, nil
	case "portfolio":
		return KindProjects, nil
	}
	return "", fmt.Errorf("unknown content kind %q: %w", s, ErrNotFound)
}

// Singleton reports whether the kind is stored as one fixed document.
func (k Kind) Singleton() bool {
	return k == KindHero || k == KindAbout
}

// Collection returns the store collection holding documents of this kind.
// Singletons live in the shared "content" collection keyed by kind name.
func (k Kind) Collection() string {
	if k.Singleton() {
		return CollectionContent
	}
	return string(k)
}

// Content is implemented by every stored shape.
type Content interface {
	Validate() error
}

// Item is a collection member with a store-assigned identity.
type Item interface {
	Content
	DocumentID() string
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidContent, fmt.Sprintf(format, args...))
}

// Hero is the banner singleton ("content/hero").
type Hero struct {
	Greeting  string `json:"greeting"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	ImageURL  string `json:"imageUrl"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
}

// Validate accepts any hero; a stored singleton is used as-is.
func (Hero) Validate() error { return nil }

// About is the about-section singleton ("content/about").
type About struct {
	Heading      string `json:"heading"`
	Subheading   string `json:"subheading"`
	Description1 string `json:"description1"`
	Description2 string `json:"description2"`
	ImageURL     string `json:"imageUrl"`
}

func (About) Validate() error { return nil }

// ServiceIcon is the closed set of icons the services section can render.
type ServiceIcon string

const (
	IconCode  ServiceIcon = "code"
	IconPen   ServiceIcon = "pen"
	IconChart ServiceIcon = "chart"
)

var serviceGlyphs = map[ServiceIcon]string{
	IconCode:  "code-2",
	IconPen:   "pen-tool",
	IconChart: "bar-chart-3",
}

// ServiceIcons returns the selectable icons in display order.
func ServiceIcons() []ServiceIcon {
	return []ServiceIcon{IconCode, IconPen, IconChart}
}

func (i ServiceIcon) Known() bool {
	_, ok := serviceGlyphs[i]
	return ok
}

// Glyph returns the glyph rendered for the icon, or "" for an unrecognized
// tag (no icon is rendered).
func (i ServiceIcon) Glyph() string {
	return serviceGlyphs[i]
}

type Service struct {
	ID          string      `json:"id,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        ServiceIcon `json:"icon"`
}

func (s Service) DocumentID() string { return s.ID }

func (s Service) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return invalid("service title is required")
	}
	return nil
}

// CheckDraft rejects icons outside the selectable set. Stored services with
// other tags still load and simply render without an icon.
func (s Service) CheckDraft() error {
	if !s.Icon.Known() {
		return invalid("unknown service icon %q", s.Icon)
	}
	return nil
}

// TechStack is a comma-joined list of technologies.
type TechStack string

// UnmarshalJSON accepts either the comma-joined string or a JSON array.
func (t *TechStack) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = TechStack(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("techStack must be a string or a list of strings: %w", err)
	}
	*t = TechStack(strings.Join(list, ", "))
	return nil
}

func (t TechStack) List() []string {
	var out []string
	for _, part := range strings.Split(string(t), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// AllCategory is the synthetic filter value that selects every project.
const AllCategory = "All"

// IsAllCategory reports whether c collides with the reserved filter value.
func IsAllCategory(c string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(c)) == fold.String(AllCategory)
}

type Project struct {
	ID              string    `json:"id,omitempty"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Image           string    `json:"image"`
	Gallery         []string  `json:"gallery"`
	TechStack       TechStack `json:"techStack"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription"`
	Link            string    `json:"link"`
	GitHub          string    `json:"github"`
}

func (p Project) DocumentID() string { return p.ID }

func (p Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return invalid("project title is required")
	}
	if IsAllCategory(p.Category) {
		return invalid("category %q is reserved", p.Category)
	}
	return nil
}

// AddGalleryURL appends url to the gallery. Blank urls are ignored and
// reported as false.
func (p *Project) AddGalleryURL(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	p.Gallery = append(p.Gallery, url)
	return true
}

// RemoveGalleryURL removes the gallery entry at index, keeping the order of
// the rest.
func (p *Project) RemoveGalleryURL(index int) error {
	if index < 0 || index >= len(p.Gallery) {
		return invalid("gallery index %d out of range (%d images)", index, len(p.Gallery))
	}
	p.Gallery = slices.Delete(slices.Clone(p.Gallery), index, index+1)
	return nil
}

// CarouselImages is the public carousel order: primary image, then gallery.
func (p Project) CarouselImages() []string {
	images := make([]string, 0, len(p.Gallery)+1)
	if p.Image != "" {
		images = append(images, p.Image)
	}
	return append(images, p.Gallery...)
}

// Categories returns the filter list: "All" followed by each distinct
// category in first-seen order.
func Categories(projects []Project) []string {
	out := []string{AllCategory}
	seen := map[string]bool{}
	for _, p := range projects {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func FilterByCategory(projects []Project, category string) []Project {
	if category == "" || IsAllCategory(category) {
		return slices.Clone(projects)
	}
	var out []Project
	for _, p := range projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

type Experience struct {
	ID          string `json:"id,omitempty"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (e Experience) DocumentID() string { return e.ID }

func (e Experience) Validate() error {
	if strings.TrimSpace(e.Role) == "" {
		return invalid("experience role is required")
	}
	return nil
}

type Skill struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Icon       string `json:"icon"`
}

func (s Skill) DocumentID() string { return s.ID }

func (s Skill) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return invalid("skill name is required")
	}
	if s.Percentage < 0 || s.Percentage > 100 {
		return invalid("skill percentage %d outside 0-100", s.Percentage)
	}
	return nil
}

// SortExperience orders the timeline by Order ascending. Ties keep their
// relative order.
func SortExperience(items []Experience) {
	slices.SortStableFunc(items, func(a, b Experience) int {
		return cmp.Compare(a.Order, b.Order)
	})
}

// SortSkills orders skills by percentage, highest first.
func SortSkills(items []Skill) {
	slices.SortStableFunc(items, func(a, b Skill) int {
		return cmp.Compare(b.Percentage, a.Percentage)
	})
}
