package service

import (
	"strings"

	"orgregistry/pkg/domain"
	dErrors "orgregistry/pkg/domain-errors"
)

var umlauts = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// deriveOrganizationID slugifies an organization name into the durable bare
// id: lowercase, German umlauts transliterated, everything outside
// [a-z0-9- ] stripped, whitespace runs collapsed to a single dash. The
// result is deterministic so registering the same name twice targets the
// same catalog document.
func deriveOrganizationID(name string) (domain.OrganizationID, error) {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = umlauts.Replace(slug)

	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == ' ':
			b.WriteRune(r)
		}
	}
	slug = strings.Join(strings.Fields(b.String()), "-")

	id, err := domain.ParseOrganizationID(slug)
	if err != nil {
		return "", dErrors.Newf(dErrors.CodeBadRequest, "organization name %q yields no usable identifier", name)
	}
	return id, nil
}
