package preview

import (
	"embed"
	"io/fs"
)

// AssetsPrefix is the URL path the default theme expects AssetsFS under.
const AssetsPrefix = "/assets"

//go:embed assets/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the bundled preview stylesheet.
//
// Typical mount:
//
//	mux.Handle(preview.AssetsPrefix+"/",
//	  http.StripPrefix(preview.AssetsPrefix+"/",
//	    http.FileServerFS(preview.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
