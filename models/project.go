package models

// MediaItem is one entry of a project's media list.
type MediaItem struct {
	Path        string `json:"path"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// Project represents a portfolio entry within one language partition.
//
// Gallery is the legacy list of asset paths; Media supersedes it and carries
// descriptions. A nil Media means the payload did not supply one.
type Project struct {
	ID              string            `json:"id"`
	Slug            string            `json:"slug"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	LongDescription string            `json:"longDescription,omitempty"`
	Category        string            `json:"category"`
	CoverImage      string            `json:"coverImage"`
	ThumbnailImage  string            `json:"thumbnailImage"`
	Gallery         []string          `json:"gallery"`
	Media           []MediaItem       `json:"media"`
	Featured        bool              `json:"featured"`
	Date            string            `json:"date,omitempty"`
	ProjectType     string            `json:"projectType,omitempty"`
	Tools           []string          `json:"tools,omitempty"`
	Stats           map[string]string `json:"stats,omitempty"`
}

// Clone returns a deep copy so that records held by different partitions
// never share slices.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Gallery = cloneStrings(p.Gallery)
	c.Media = cloneMedia(p.Media)
	c.Tools = cloneStrings(p.Tools)
	if p.Stats != nil {
		c.Stats = make(map[string]string, len(p.Stats))
		for k, v := range p.Stats {
			c.Stats[k] = v
		}
	}
	return &c
}

// MirrorSharedFields copies the fields shared between translations of the
// same project: cover, thumbnail, gallery, media and featured. Text fields
// stay independent.
func MirrorSharedFields(dst, src *Project) {
	dst.CoverImage = src.CoverImage
	dst.ThumbnailImage = src.ThumbnailImage
	dst.Gallery = cloneStrings(src.Gallery)
	dst.Media = cloneMedia(src.Media)
	dst.Featured = src.Featured
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMedia(in []MediaItem) []MediaItem {
	if in == nil {
		return nil
	}
	out := make([]MediaItem, len(in))
	copy(out, in)
	return out
}
