package assets

// ThemeLoader loads page themes by name (without the .css extension).
type ThemeLoader interface {
	LoadTheme(name string) (string, error)
}
