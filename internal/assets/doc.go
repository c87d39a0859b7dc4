// Package assets provides page themes: base stylesheets embedded in
// standalone HTML pages.
//
// # Loader Architecture
//
//	ThemeLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes compiled in with go:embed
//	    ├── FilesystemLoader  - themes from a custom directory on disk
//	    └── Resolver          - custom first, falling back to embedded
//
// A custom directory can override a built-in theme by name or add new
// ones. Only "not found" errors fall through to the embedded themes;
// invalid names and read errors are returned as is.
//
// # Directory Structure
//
//	{assetsDir}/
//	└── themes/
//	    └── {name}.css
//
// # Security
//
// Theme names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within the assets directory.
package assets
