package route

// Generate returns the canonical path for t. It never fails: a domain or
// section target without a domain id yields the root path, and a section
// target without a section id yields its domain's path.
func Generate(t Target) string {
	switch t.View {
	case ViewUniverse:
		return RootPath
	case ViewMap:
		return MapPath
	case ViewOverlay:
		return OverlayPath
	case ViewDomain:
		if t.Domain == "" {
			return RootPath
		}
		return domainPrefix + string(t.Domain)
	case ViewSection:
		if t.Domain == "" {
			return RootPath
		}
		if t.Section == "" {
			return domainPrefix + string(t.Domain)
		}
		return domainPrefix + string(t.Domain) + "/" + string(t.Section)
	default:
		return RootPath
	}
}
