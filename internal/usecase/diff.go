package usecase

// classify compares a source catalog against a base-snapshot catalog and
// emits one change entry per source record, in source order:
//
//   - no base record at the same relative path: new
//   - base record exists, digests differ: changed
//   - base record exists, digests equal: unchanged, with the base file's
//     absolute path attached for hard-linking
//
// Comparison is by content digest only; size and modification time are
// informational. Base records with no source counterpart (deleted files)
// produce no output and are therefore never carried into the new
// snapshot.
func classify(fs FileSystemPort, source, base Catalog) []Change {
	baseIdx := base.Index()

	changes := make([]Change, 0, len(source.Files))
	for _, src := range source.Files {
		baseRec, ok := baseIdx[src.RelPath]
		switch {
		case !ok:
			changes = append(changes, Change{RelPath: src.RelPath, Status: StatusNew})
		case src.Digest != baseRec.Digest:
			changes = append(changes, Change{RelPath: src.RelPath, Status: StatusChanged})
		default:
			changes = append(changes, Change{
				RelPath:  src.RelPath,
				Status:   StatusUnchanged,
				BasePath: fs.Join(base.Root, baseRec.RelPath),
			})
		}
	}
	return changes
}

// countPending returns the number of entries that require copying from
// the source (new or changed).
func countPending(changes []Change) int {
	n := 0
	for _, c := range changes {
		if c.Status != StatusUnchanged {
			n++
		}
	}
	return n
}
