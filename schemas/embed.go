package schemas

import (
	"embed"
)

// Files embeds the default data model loaded when no schema is configured.
//
//go:embed *.yaml
var Files embed.FS
