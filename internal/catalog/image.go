package catalog

import "strings"

const PlaceholderImage = "https://via.placeholder.com/300x200?text=Sin+Imagen"

// ImageURL resolves a product image reference. Absolute references are kept,
// relative ones are served from the API origin (apiBase without its /api suffix).
func ImageURL(apiBase, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return PlaceholderImage
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	origin := strings.TrimSuffix(strings.TrimRight(apiBase, "/"), "/api")
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}

	return origin + ref
}
