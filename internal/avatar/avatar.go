package avatar

import (
	"errors"
	"net/url"
	"strings"
)

// PlaceholderURL is substituted when a form is submitted without an image.
const PlaceholderURL = "https://media.istockphoto.com/id/1451587807/vector/user-profile-icon-vector-avatar-or-person-icon-profile-picture-portrait-symbol-vector.jpg?s=612x612&w=0&k=20&c=yDJ4ITX1cHMh25Lt1vI1zBn2cAKKAlByHBvPJ8gEiIg="

var (
	ErrNameRequired    = errors.New("full name is required")
	ErrInvalidImageURL = errors.New("image URL must be an http(s) URL")
)

// Record is a displayed profile card.
type Record struct {
	ID        int64
	FirstName string
	LastName  string
	AvatarURL string
}

// FullName joins first and last name, trimmed.
func (r Record) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Form holds the raw values of the add/edit dialog.
type Form struct {
	Name     string
	ImageURL string
}

// Validate checks the name is present and a non-blank image is an absolute
// http(s) URL.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	raw := strings.TrimSpace(f.ImageURL)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidImageURL
	}
	return nil
}

// SplitName returns the first whitespace-separated token and the rest joined
// by single spaces.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// ResolveURL returns the trimmed input, or placeholder when blank.
func ResolveURL(input, placeholder string) string {
	if v := strings.TrimSpace(input); v != "" {
		return v
	}
	return placeholder
}
