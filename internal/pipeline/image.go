package pipeline

// NewImage returns the component for <img> and <Image />.
// Attributes pass through unchanged; class is prepended to any class the
// caller gave. loading=lazy and decoding=async are only added when absent.
// Dimensions and src are not checked.
func NewImage(class string) Component {
	return func(p Props) (TrustedHTML, error) {
		attrs := prependClass(p.Attrs, class)
		if _, ok := attrs.Get("loading"); !ok {
			attrs = attrs.Set("loading", "lazy")
		}
		if _, ok := attrs.Get("decoding"); !ok {
			attrs = attrs.Set("decoding", "async")
		}
		return Element("img", attrs, "")
	}
}
