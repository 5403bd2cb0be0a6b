package prompts

import "fmt"

// UnknownVariantError indicates a trial references a variant with no
// registered template. The trial generator validates variant names up front,
// so hitting this at render time means the registry and template file have
// drifted apart.
type UnknownVariantError struct {
	Variant string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("no template registered for variant %q", e.Variant)
}

// MissingPlaceholderError indicates a template placeholder has no
// corresponding entry in the trial configuration. This is a template/catalog
// authoring bug and is never silently substituted.
type MissingPlaceholderError struct {
	Variant     string
	Placeholder string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("template for variant %q requires placeholder %q which has no configuration entry", e.Variant, e.Placeholder)
}
