package models

// NormalizeMedia makes sure Gallery is a list and, when Media was not
// supplied, derives it from Gallery with empty descriptions. Gallery is never
// rebuilt from Media.
func NormalizeMedia(p *Project) {
	if p.Gallery == nil {
		p.Gallery = []string{}
	}
	if p.Media == nil {
		p.Media = make([]MediaItem, 0, len(p.Gallery))
		for _, path := range p.Gallery {
			p.Media = append(p.Media, MediaItem{Path: path})
		}
	}
}

// MediaPaths returns the project's asset paths, taken from Media when it has
// entries and from Gallery otherwise.
func MediaPaths(p *Project) []string {
	if len(p.Media) > 0 {
		paths := make([]string, 0, len(p.Media))
		for _, item := range p.Media {
			paths = append(paths, item.Path)
		}
		return paths
	}
	return cloneStrings(p.Gallery)
}

// AddMedia appends item to both representations. The first item added to a
// project without a cover becomes its cover and thumbnail.
func AddMedia(p *Project, item MediaItem) {
	NormalizeMedia(p)
	first := len(MediaPaths(p)) == 0

	p.Gallery = append(p.Gallery, item.Path)
	p.Media = append(p.Media, item)

	if first && p.CoverImage == "" {
		p.CoverImage = item.Path
		p.ThumbnailImage = item.Path
	}
}

// RemoveMedia drops path from Gallery and Media. When the removed item was the
// cover, the first remaining item is promoted to cover and thumbnail; with
// nothing left the cover is cleared. It reports whether anything was removed.
func RemoveMedia(p *Project, path string) bool {
	removed := false

	gallery := p.Gallery[:0:0]
	for _, existing := range p.Gallery {
		if existing == path {
			removed = true
			continue
		}
		gallery = append(gallery, existing)
	}
	if p.Gallery != nil {
		p.Gallery = gallery
	}

	if p.Media != nil {
		media := make([]MediaItem, 0, len(p.Media))
		for _, item := range p.Media {
			if item.Path == path {
				removed = true
				continue
			}
			media = append(media, item)
		}
		p.Media = media
	}

	if !removed || p.CoverImage != path {
		return removed
	}

	if remaining := MediaPaths(p); len(remaining) > 0 {
		p.CoverImage = remaining[0]
		p.ThumbnailImage = remaining[0]
	} else {
		p.CoverImage = ""
		if p.ThumbnailImage == path {
			p.ThumbnailImage = ""
		}
	}
	return true
}

// RepairCover points the cover at the first media item when it is empty or
// refers to something that is no longer part of the project. The thumbnail is
// only filled in when it is empty. Running it twice is the same as once.
func RepairCover(p *Project) bool {
	paths := MediaPaths(p)
	if len(paths) == 0 {
		return false
	}
	if p.CoverImage != "" && contains(paths, p.CoverImage) {
		return false
	}
	p.CoverImage = paths[0]
	if p.ThumbnailImage == "" {
		p.ThumbnailImage = paths[0]
	}
	return true
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
