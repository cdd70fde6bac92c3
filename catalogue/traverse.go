package catalogue

// Traverse opens the catalogue at startPath, loads its manifest and reconciles it against the
// file system, descending into subdirectories when recursive is set.
func Traverse(startPath string, recursive bool, options Options) (*Catalogue, error) {
	root, err := Open(startPath, options)

	if err != nil {
		return nil, err
	}

	if err = root.LoadFromManifest(); err != nil {
		return nil, err
	}

	if err = root.ScanFilesystem(recursive); err != nil {
		return nil, err
	}

	return root, nil
}

// Walk visits the tree in pre-order, a catalogue before its subcatalogues, without recursion.
// Returning false from visit stops the walk.
func Walk(root *Catalogue, visit func(c *Catalogue) bool) {
	pending := []*Catalogue{root}

	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if !visit(current) {
			return
		}

		// Push in reverse so children come off the stack in listing order
		for i := len(current.subcatalogues) - 1; i >= 0; i-- {
			pending = append(pending, current.subcatalogues[i])
		}
	}
}
