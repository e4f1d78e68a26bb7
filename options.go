package reluri

// RenderOptions contains options for rendering URIs.
// A nil *RenderOptions means the canonical form produced by [URI.String].
type RenderOptions struct {
	// RootPath renders an empty path as "/".
	RootPath bool `json:"root_path,omitempty"`
}

func (o *RenderOptions) rootPath() bool { return o != nil && o.RootPath }
