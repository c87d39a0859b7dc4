package assets

// Built-in theme names.
const (
	DefaultTheme = "default"
	NoTheme      = "none" // disables the base stylesheet
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadTheme loads a built-in theme by name, without the .css extension.
// Returns ErrThemeNotFound if the theme does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or dots.
func LoadTheme(name string) (string, error) {
	return defaultLoader.LoadTheme(name)
}
