package render

import "resumelift/internal/layout"

// rgb is a 24-bit text color.
type rgb struct {
	R, G, B int
}

var (
	black    = rgb{0, 0, 0}
	darkBlue = rgb{0, 0, 139}
)

// Style is the fixed visual treatment for one line role.
type Style struct {
	Size        float64
	Bold        bool
	Color       rgb
	Indent      float64
	SpaceBefore float64
	SpaceAfter  float64
}

var (
	headerStyle = Style{
		Size:        14,
		Bold:        true,
		Color:       darkBlue,
		SpaceBefore: 12,
		SpaceAfter:  12,
	}
	subHeaderStyle = Style{
		Size:        11,
		Bold:        true,
		Color:       black,
		SpaceBefore: 6,
		SpaceAfter:  6,
	}
	normalStyle = Style{
		Size:        10,
		Color:       black,
		SpaceBefore: 2,
		SpaceAfter:  4,
	}
	bulletStyle = Style{
		Size:        10,
		Color:       black,
		Indent:      20,
		SpaceBefore: 1,
		SpaceAfter:  3,
	}
	contactStyle = Style{
		Size:        10,
		Color:       black,
		SpaceBefore: 1,
		SpaceAfter:  2,
	}
)

// styleFor maps a line role to its style. SkillsList and Prose share the
// normal style; the skills text itself is reshaped in BuildDocument.
func styleFor(role layout.Role) Style {
	switch role {
	case layout.SectionHeader:
		return headerStyle
	case layout.SubHeader:
		return subHeaderStyle
	case layout.Bullet:
		return bulletStyle
	case layout.ContactLine:
		return contactStyle
	default:
		return normalStyle
	}
}
