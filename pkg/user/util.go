package user

// diff computes the reconciliation between a current and a desired set of
// strings: members of desired absent from current go into add, members of
// current absent from desired go into remove. Order follows the input slices;
// duplicates are collapsed.
func diff(current, desired []string) (add, remove []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, s := range current {
		currentSet[s] = struct{}{}
	}

	desiredSet := make(map[string]struct{}, len(desired))
	for _, s := range desired {
		if _, ok := desiredSet[s]; ok {
			continue
		}
		desiredSet[s] = struct{}{}

		if _, ok := currentSet[s]; !ok {
			add = append(add, s)
		}
	}

	seen := make(map[string]struct{}, len(current))
	for _, s := range current {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}

		if _, ok := desiredSet[s]; !ok {
			remove = append(remove, s)
		}
	}

	return add, remove
}
