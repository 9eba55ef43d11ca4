package credentials

import (
	"strings"

	"gagyebu/internal/config"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/models"
)

// Directory maps member emails to household roles.
type Directory struct {
	members []config.Member
}

// NewDirectory builds a Directory from the configured members. Members
// without an email are skipped.
func NewDirectory(members []config.Member) *Directory {
	d := &Directory{}
	for _, m := range members {
		if m.Email == "" {
			continue
		}
		m.Email = strings.ToLower(strings.TrimSpace(m.Email))
		d.members = append(d.members, m)
	}
	return d
}

// Member returns the member registered under email.
func (d *Directory) Member(email string) (config.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, m := range d.members {
		if m.Email == email {
			return m, nil
		}
	}
	return config.Member{}, apperrors.ErrUnknownOwner
}

// RoleFor returns the role of the member registered under email.
func (d *Directory) RoleFor(email string) (models.Role, error) {
	m, err := d.Member(email)
	if err != nil {
		return "", err
	}
	return m.Role, nil
}

// ByRole returns the member holding role.
func (d *Directory) ByRole(role models.Role) (config.Member, error) {
	for _, m := range d.members {
		if m.Role == role {
			return m, nil
		}
	}
	return config.Member{}, apperrors.WithMessage(apperrors.ErrUnknownOwner, "No account is configured for "+string(role))
}

// Members returns the registered members in configuration order.
func (d *Directory) Members() []config.Member {
	out := make([]config.Member, len(d.members))
	copy(out, d.members)
	return out
}
