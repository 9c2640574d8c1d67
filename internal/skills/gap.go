package skills

// Gap computes the skills a person must acquire to move from the current
// role into the target role.
//
// The gap combines two parts:
//  1. foundational: skills required by the current role that the person lacks
//  2. forward: skills required by the target role that the person lacks
//
// All inputs are compared lowercase. The result is sorted, deduplicated and
// never nil; empty inputs yield an empty gap.
func Gap(current, target, known Set) []string {
	known = known.normalized()

	foundational := current.normalized().Minus(known)
	forward := target.normalized().Minus(known)

	return foundational.Union(forward).Sorted()
}

// GapFromTags is Gap over raw, unnormalized skill tags.
func GapFromTags(current, target, known []string) []string {
	return Gap(NewSet(current...), NewSet(target...), NewSet(known...))
}
