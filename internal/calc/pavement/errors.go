package pavement

import "errors"

// Catalog and input errors.
var (
	ErrEmptyCatalog      = errors.New("pavement: empty material catalog")
	ErrInvalidMaterial   = errors.New("pavement: invalid material")
	ErrDuplicateMaterial = errors.New("pavement: duplicate material name")
	ErrInvalidTarget     = errors.New("pavement: target structural number must be a positive finite number")
	ErrInvalidOptions    = errors.New("pavement: invalid options")
)

// Feasibility errors, one per construction rule. Check returns the first rule
// a section breaks.
var (
	ErrEmptySection         = errors.New("pavement: section has no courses")
	ErrDuplicateCourse      = errors.New("pavement: material used in more than one course")
	ErrNoSurface            = errors.New("pavement: top course is not a surface course")
	ErrMultipleSubgrade     = errors.New("pavement: more than one subgrade treatment")
	ErrAdjacentAlkaline     = errors.New("pavement: adjacent alkaline courses")
	ErrNonPositiveThickness = errors.New("pavement: course thickness must be positive")
	ErrLiftUnachievable     = errors.New("pavement: thickness cannot be built from whole lifts")
)
