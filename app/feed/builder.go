package feed

// Build converts m into an element called name. Keys become child elements in
// insertion order; nested mappings recurse, dates use DateLayout.
func Build(name string, m *Mapping) Element {
	el := Element{Name: name, Children: make([]Node, 0, m.Len())}
	for key, value := range m.All() {
		el.Children = append(el.Children, buildValue(key, value))
	}
	return el
}

func buildValue(name string, value Value) Element {
	switch v := value.(type) {
	case *Mapping:
		return Build(name, v)
	case DateTime:
		return Element{Name: name, Children: []Node{Text(v.String())}}
	case Scalar:
		return Element{Name: name, Children: []Node{Text(v)}}
	default:
		return Element{Name: name}
	}
}
