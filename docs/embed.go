package docs

import (
	_ "embed"
)

// PathQueryGuide embeds the path query format reference that is served
// as the description of the translate-path-query tool.
//
//go:embed prompts/path_query_guide.md
var PathQueryGuide string
